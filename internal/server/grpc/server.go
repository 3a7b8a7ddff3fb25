// Package grpcserver exposes the AgroCarbon gRPC API handlers.
package grpcserver

import (
	"context"
	"crypto/subtle"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/and161185/agrocarbon/internal/api"
	"github.com/and161185/agrocarbon/internal/convert"
	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
	"github.com/and161185/agrocarbon/internal/service"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// Services groups the domain services behind the API.
type Services struct {
	Auth     service.AuthService
	Users    service.UserService
	Farms    service.FarmService
	Ledger   service.LedgerService
	Alerts   service.AlertService
	Insights service.InsightService
}

// Option tunes a Server.
type Option func(*Server)

// WithReviewerKey enables ReviewProof for callers presenting key.
func WithReviewerKey(key string) Option {
	return func(s *Server) { s.reviewerKey = key }
}

// WithDevCodes returns issued OTP codes in RequestOTP responses.
func WithDevCodes(on bool) Option {
	return func(s *Server) { s.devCodes = on }
}

// Server wires services into gRPC handlers.
type Server struct {
	api.UnimplementedAgroCarbonServer
	svc         Services
	signKey     []byte
	reviewerKey string
	devCodes    bool
	log         *zap.Logger
}

// New constructs a gRPC server with injected services.
func New(svc Services, signKey []byte, log *zap.Logger, opts ...Option) *Server {
	s := &Server{svc: svc, signKey: signKey, log: log}
	for _, o := range opts {
		o(s)
	}
	return s
}

// toStatus maps service errors onto gRPC codes.
func (s *Server) toStatus(op string, err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, errs.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "bad credentials")
	case errors.Is(err, errs.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, "rate limited")
	case errors.Is(err, errs.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	s.log.Error("request failed", zap.String("op", op), zap.Error(err))
	return status.Errorf(codes.Internal, "%s: internal error", op)
}

// remoteIP is the caller's host without the ephemeral port, so the limiter
// sees every connection from one address as the same client.
func remoteIP(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// --- Auth ---

// RequestOTP issues a one-time password for a mobile number.
func (s *Server) RequestOTP(ctx context.Context, req *api.RequestOTPRequest) (*api.RequestOTPResponse, error) {
	code, exp, err := s.svc.Auth.RequestOTP(ctx, strings.TrimSpace(req.Mobile))
	if err != nil {
		return nil, s.toStatus("request otp", err)
	}
	resp := &api.RequestOTPResponse{ExpiresAt: exp}
	if s.devCodes {
		resp.DevCode = code
	}
	return resp, nil
}

// Login signs in an existing user. NotFound tells the client to sign up.
func (s *Server) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {
	if req.Mobile == "" || req.OTP == "" {
		return nil, status.Error(codes.InvalidArgument, "empty mobile/otp")
	}
	tok, u, err := s.svc.Auth.Login(ctx, strings.TrimSpace(req.Mobile), req.OTP, remoteIP(ctx))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "mobile not registered")
		}
		return nil, s.toStatus("login", err)
	}
	return &api.AuthResponse{AccessToken: tok.AccessToken, ExpiresAt: tok.ExpiresAt, User: convert.ToAPIUser(u)}, nil
}

// Signup registers a farmer and signs them in.
func (s *Server) Signup(ctx context.Context, req *api.SignupRequest) (*api.AuthResponse, error) {
	if req.Mobile == "" || req.OTP == "" {
		return nil, status.Error(codes.InvalidArgument, "empty mobile/otp")
	}
	tok, u, err := s.svc.Auth.Signup(ctx, strings.TrimSpace(req.Mobile), req.OTP, remoteIP(ctx), convert.FromAPISignup(req))
	if err != nil {
		return nil, s.toStatus("signup", err)
	}
	return &api.AuthResponse{AccessToken: tok.AccessToken, ExpiresAt: tok.ExpiresAt, User: convert.ToAPIUser(u)}, nil
}

// --- Profile ---

// CurrentUser returns the caller's profile.
func (s *Server) CurrentUser(ctx context.Context, _ *api.Empty) (*api.UserResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.svc.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, s.toStatus("current user", err)
	}
	return &api.UserResponse{User: convert.ToAPIUser(*u)}, nil
}

// UpdateProfile merges the given fields into the caller's profile.
func (s *Server) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.UserResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.svc.Users.UpdateUser(ctx, userID, convert.FromAPIUserPatch(req))
	if err != nil {
		return nil, s.toStatus("update profile", err)
	}
	return &api.UserResponse{User: convert.ToAPIUser(*u)}, nil
}

// Catalog returns the practice and crop catalogs.
func (s *Server) Catalog(context.Context, *api.Empty) (*api.CatalogResponse, error) {
	return convert.ToAPICatalog(), nil
}

// --- Farms ---

// SaveFarm maps a new farm for the caller.
func (s *Server) SaveFarm(ctx context.Context, req *api.SaveFarmRequest) (*api.FarmResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	f, err := s.svc.Farms.SaveFarm(ctx, userID, service.FarmInput{
		Area:     req.Area,
		CropType: req.CropType,
		Location: convert.FromAPILatLng(req.Location),
		Boundary: convert.FromAPILatLngs(req.Boundary),
	})
	if err != nil {
		return nil, s.toStatus("save farm", err)
	}
	return &api.FarmResponse{Farm: convert.ToAPIFarm(*f)}, nil
}

// ListFarms lists the caller's farms.
func (s *Server) ListFarms(ctx context.Context, _ *api.Empty) (*api.ListFarmsResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	fs, err := s.svc.Farms.ListFarms(ctx, userID)
	if err != nil {
		return nil, s.toStatus("list farms", err)
	}
	return &api.ListFarmsResponse{Farms: convert.ToAPIFarms(fs)}, nil
}

// DeclarePractice records a practice adoption.
func (s *Server) DeclarePractice(ctx context.Context, req *api.DeclarePracticeRequest) (*api.PracticeResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	farmID, err := convert.ParseID(req.FarmID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad farm id")
	}
	var start time.Time
	if req.StartDate != nil {
		start = *req.StartDate
	}
	p, err := s.svc.Farms.DeclarePractice(ctx, userID, service.PracticeInput{
		FarmID: farmID, PracticeID: req.PracticeID, StartDate: start,
	})
	if err != nil {
		return nil, s.toStatus("declare practice", err)
	}
	return &api.PracticeResponse{Practice: convert.ToAPIPractice(*p)}, nil
}

// ListPractices lists the caller's declarations.
func (s *Server) ListPractices(ctx context.Context, _ *api.Empty) (*api.ListPracticesResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	ps, err := s.svc.Farms.ListPractices(ctx, userID)
	if err != nil {
		return nil, s.toStatus("list practices", err)
	}
	return &api.ListPracticesResponse{Practices: convert.ToAPIPractices(ps)}, nil
}

// SubmitProof stores evidence metadata for verification.
func (s *Server) SubmitProof(ctx context.Context, req *api.SubmitProofRequest) (*api.ProofResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	farmID, err := convert.ParseID(req.FarmID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad farm id")
	}
	p, err := s.svc.Farms.SubmitProof(ctx, userID, service.ProofInput{
		FarmID:      farmID,
		PracticeID:  req.PracticeID,
		Type:        model.ProofType(req.Type),
		Description: req.Description,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
	})
	if err != nil {
		return nil, s.toStatus("submit proof", err)
	}
	return &api.ProofResponse{Proof: convert.ToAPIProof(*p)}, nil
}

// ListProofs lists the caller's proofs.
func (s *Server) ListProofs(ctx context.Context, _ *api.Empty) (*api.ListProofsResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	ps, err := s.svc.Farms.ListProofs(ctx, userID)
	if err != nil {
		return nil, s.toStatus("list proofs", err)
	}
	return &api.ListProofsResponse{Proofs: convert.ToAPIProofs(ps)}, nil
}

// ReviewProof records a verifier decision. It is authorized by the reviewer
// key header, not by a user token.
func (s *Server) ReviewProof(ctx context.Context, req *api.ReviewProofRequest) (*api.ProofResponse, error) {
	if !s.isReviewer(ctx) {
		return nil, status.Error(codes.PermissionDenied, "reviewer key required")
	}
	proofID, err := convert.ParseID(req.ProofID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad proof id")
	}
	p, err := s.svc.Farms.ReviewProof(ctx, proofID, model.ProofStatus(req.Status))
	if err != nil {
		return nil, s.toStatus("review proof", err)
	}
	return &api.ProofResponse{Proof: convert.ToAPIProof(*p)}, nil
}

func (s *Server) isReviewer(ctx context.Context) bool {
	if s.reviewerKey == "" {
		return false
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return false
	}
	for _, v := range md.Get(api.ReviewerKeyHeader) {
		if subtle.ConstantTimeCompare([]byte(v), []byte(s.reviewerKey)) == 1 {
			return true
		}
	}
	return false
}

// --- Ledger ---

// RecordCredit issues verified credits to a farmer. Issuance feeds earnings,
// so it takes the reviewer key like proof review does.
func (s *Server) RecordCredit(ctx context.Context, req *api.RecordCreditRequest) (*api.CreditResponse, error) {
	if !s.isReviewer(ctx) {
		return nil, status.Error(codes.PermissionDenied, "reviewer key required")
	}
	userID, err := convert.ParseID(req.UserID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad user id")
	}
	value, err := convert.ParseMoney(req.Value)
	if err != nil {
		return nil, s.toStatus("record credit", err)
	}
	c, err := s.svc.Ledger.RecordCredit(ctx, userID, service.CreditInput{
		Credits: req.Credits, Value: value, Period: req.Period,
	})
	if err != nil {
		return nil, s.toStatus("record credit", err)
	}
	return &api.CreditResponse{Credit: convert.ToAPICredit(*c)}, nil
}

// ListCredits lists the caller's ledger.
func (s *Server) ListCredits(ctx context.Context, _ *api.Empty) (*api.ListCreditsResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	cs, err := s.svc.Ledger.ListCredits(ctx, userID)
	if err != nil {
		return nil, s.toStatus("list credits", err)
	}
	return &api.ListCreditsResponse{Credits: convert.ToAPICredits(cs)}, nil
}

// CreateListing offers the caller's credits on the marketplace.
func (s *Server) CreateListing(ctx context.Context, req *api.CreateListingRequest) (*api.ListingResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	price, err := convert.ParseMoney(req.PricePerCredit)
	if err != nil {
		return nil, s.toStatus("create listing", err)
	}
	l, err := s.svc.Ledger.CreateListing(ctx, userID, service.ListingInput{Credits: req.Credits, PricePerCredit: price})
	if err != nil {
		return nil, s.toStatus("create listing", err)
	}
	return &api.ListingResponse{Listing: convert.ToAPIListing(*l)}, nil
}

// ListListings returns active marketplace offers.
func (s *Server) ListListings(ctx context.Context, _ *api.Empty) (*api.ListListingsResponse, error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}
	ls, err := s.svc.Ledger.ListListings(ctx)
	if err != nil {
		return nil, s.toStatus("list listings", err)
	}
	return &api.ListListingsResponse{Listings: convert.ToAPIListings(ls)}, nil
}

// --- Alerts and insights ---

// ListAlerts lists the caller's unread alerts.
func (s *Server) ListAlerts(ctx context.Context, _ *api.Empty) (*api.ListAlertsResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	as, err := s.svc.Alerts.ListAlerts(ctx, userID)
	if err != nil {
		return nil, s.toStatus("list alerts", err)
	}
	return &api.ListAlertsResponse{Alerts: convert.ToAPIAlerts(as)}, nil
}

// MarkAlertRead dismisses one of the caller's alerts.
func (s *Server) MarkAlertRead(ctx context.Context, req *api.MarkAlertReadRequest) (*api.Empty, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	alertID, err := convert.ParseID(req.AlertID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad alert id")
	}
	if err := s.svc.Alerts.MarkAlertRead(ctx, userID, alertID); err != nil {
		return nil, s.toStatus("mark alert read", err)
	}
	return &api.Empty{}, nil
}

// GenerateAlerts evaluates reminder rules and returns the alerts it created.
func (s *Server) GenerateAlerts(ctx context.Context, _ *api.Empty) (*api.ListAlertsResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	as, err := s.svc.Alerts.GenerateSmartAlerts(ctx, userID)
	if err != nil {
		return nil, s.toStatus("generate alerts", err)
	}
	return &api.ListAlertsResponse{Alerts: convert.ToAPIAlerts(as)}, nil
}

// ListRecommendations lists practice recommendations for the caller.
func (s *Server) ListRecommendations(ctx context.Context, _ *api.Empty) (*api.ListRecommendationsResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	rs, err := s.svc.Insights.ListRecommendations(ctx, userID)
	if err != nil {
		return nil, s.toStatus("list recommendations", err)
	}
	return &api.ListRecommendationsResponse{Recommendations: convert.ToAPIRecommendations(rs)}, nil
}

// Dashboard returns the caller's home screen snapshot.
func (s *Server) Dashboard(ctx context.Context, _ *api.Empty) (*api.DashboardResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.svc.Insights.Dashboard(ctx, userID)
	if err != nil {
		return nil, s.toStatus("dashboard", err)
	}
	return &api.DashboardResponse{
		User:            convert.ToAPIUser(d.User),
		Score:           d.Score,
		Credits:         d.Credits,
		TotalEarnings:   convert.Money(d.TotalEarnings),
		Farms:           d.Farms,
		Practices:       d.Practices,
		Proofs:          d.Proofs,
		VerifiedProofs:  d.VerifiedProofs,
		Alerts:          convert.ToAPIAlerts(d.Alerts),
		Recommendations: convert.ToAPIRecommendations(d.Recommendations),
	}, nil
}

// CreditSummary returns the caller's credits report.
func (s *Server) CreditSummary(ctx context.Context, _ *api.Empty) (*api.CreditSummaryResponse, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	cs, err := s.svc.Insights.CreditSummary(ctx, userID)
	if err != nil {
		return nil, s.toStatus("credit summary", err)
	}
	return &api.CreditSummaryResponse{
		Credits:       cs.Credits,
		Score:         cs.Score,
		Farms:         cs.Farms,
		Breakdown:     convert.ToAPIBreakdown(cs.Breakdown),
		Trees:         cs.Trees,
		Cars:          cs.Cars,
		CertificateID: cs.CertificateID,
	}, nil
}

// --- token handling ---

// caller returns the authenticated user, preferring the id AuthUnary stored.
func (s *Server) caller(ctx context.Context) (uuid.UUID, error) {
	if id, ok := UserIDFromCtx(ctx); ok {
		return id, nil
	}
	id, err := s.userIDFromCtx(ctx)
	if err != nil {
		return uuid.Nil, status.Error(codes.Unauthenticated, "no auth")
	}
	return id, nil
}

// userIDFromCtx: extract "authorization: Bearer <JWT>", verify HS256, return sub as UUID.
func (s *Server) userIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	tok, err := bearerTokenFromMD(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	v := jwt.NewValidator(jwt.WithLeeway(30 * time.Second))
	if err := v.Validate(&claims); err != nil {
		return uuid.Nil, errors.New("token expired or not valid yet")
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.New("bad subject")
	}
	return id, nil
}

func bearerTokenFromMD(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("no metadata")
	}
	for _, v := range md.Get("authorization") {
		v = strings.TrimSpace(v)
		if len(v) >= 7 && strings.EqualFold(v[:7], "bearer ") {
			t := strings.TrimSpace(v[7:])
			if t != "" {
				return t, nil
			}
		}
	}
	return "", errors.New("no bearer token")
}
