package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "agrocarbon.v1.AgroCarbon"

// ReviewerKeyHeader is the metadata key carrying the verifier secret on ReviewProof.
const ReviewerKeyHeader = "x-reviewer-key"

// FullMethod returns the gRPC path of method.
func FullMethod(method string) string { return "/" + ServiceName + "/" + method }

// AgroCarbonServer is the server API for the AgroCarbon service.
type AgroCarbonServer interface {
	// RequestOTP issues a one-time password for a mobile number.
	RequestOTP(context.Context, *RequestOTPRequest) (*RequestOTPResponse, error)
	// Login signs in a registered farmer.
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	// Signup registers a farmer and signs them in.
	Signup(context.Context, *SignupRequest) (*AuthResponse, error)
	// CurrentUser returns the caller's profile.
	CurrentUser(context.Context, *Empty) (*UserResponse, error)
	// UpdateProfile changes the caller's profile.
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UserResponse, error)
	// Catalog returns the practice and crop catalogs.
	Catalog(context.Context, *Empty) (*CatalogResponse, error)
	// SaveFarm maps a new farm.
	SaveFarm(context.Context, *SaveFarmRequest) (*FarmResponse, error)
	// ListFarms lists the caller's farms.
	ListFarms(context.Context, *Empty) (*ListFarmsResponse, error)
	// DeclarePractice records a practice adoption.
	DeclarePractice(context.Context, *DeclarePracticeRequest) (*PracticeResponse, error)
	// ListPractices lists the caller's declarations.
	ListPractices(context.Context, *Empty) (*ListPracticesResponse, error)
	// SubmitProof submits evidence for verification.
	SubmitProof(context.Context, *SubmitProofRequest) (*ProofResponse, error)
	// ListProofs lists the caller's proofs.
	ListProofs(context.Context, *Empty) (*ListProofsResponse, error)
	// ReviewProof records a verifier decision; requires the reviewer key.
	ReviewProof(context.Context, *ReviewProofRequest) (*ProofResponse, error)
	// RecordCredit issues credits to a farmer; reviewer key required.
	RecordCredit(context.Context, *RecordCreditRequest) (*CreditResponse, error)
	// ListCredits lists the caller's ledger.
	ListCredits(context.Context, *Empty) (*ListCreditsResponse, error)
	// CreateListing offers credits on the marketplace.
	CreateListing(context.Context, *CreateListingRequest) (*ListingResponse, error)
	// ListListings lists active marketplace offers.
	ListListings(context.Context, *Empty) (*ListListingsResponse, error)
	// ListAlerts lists unread alerts, newest first.
	ListAlerts(context.Context, *Empty) (*ListAlertsResponse, error)
	// MarkAlertRead dismisses one alert.
	MarkAlertRead(context.Context, *MarkAlertReadRequest) (*Empty, error)
	// GenerateAlerts evaluates reminder rules and returns new alerts.
	GenerateAlerts(context.Context, *Empty) (*ListAlertsResponse, error)
	// ListRecommendations lists practice recommendations.
	ListRecommendations(context.Context, *Empty) (*ListRecommendationsResponse, error)
	// Dashboard returns the home screen snapshot.
	Dashboard(context.Context, *Empty) (*DashboardResponse, error)
	// CreditSummary returns the credits report.
	CreditSummary(context.Context, *Empty) (*CreditSummaryResponse, error)
}

// UnimplementedAgroCarbonServer answers every call with codes.Unimplemented.
type UnimplementedAgroCarbonServer struct{}

func (UnimplementedAgroCarbonServer) RequestOTP(context.Context, *RequestOTPRequest) (*RequestOTPResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestOTP not implemented")
}
func (UnimplementedAgroCarbonServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedAgroCarbonServer) Signup(context.Context, *SignupRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signup not implemented")
}
func (UnimplementedAgroCarbonServer) CurrentUser(context.Context, *Empty) (*UserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CurrentUser not implemented")
}
func (UnimplementedAgroCarbonServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*UserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProfile not implemented")
}
func (UnimplementedAgroCarbonServer) Catalog(context.Context, *Empty) (*CatalogResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Catalog not implemented")
}
func (UnimplementedAgroCarbonServer) SaveFarm(context.Context, *SaveFarmRequest) (*FarmResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveFarm not implemented")
}
func (UnimplementedAgroCarbonServer) ListFarms(context.Context, *Empty) (*ListFarmsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListFarms not implemented")
}
func (UnimplementedAgroCarbonServer) DeclarePractice(context.Context, *DeclarePracticeRequest) (*PracticeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeclarePractice not implemented")
}
func (UnimplementedAgroCarbonServer) ListPractices(context.Context, *Empty) (*ListPracticesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPractices not implemented")
}
func (UnimplementedAgroCarbonServer) SubmitProof(context.Context, *SubmitProofRequest) (*ProofResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitProof not implemented")
}
func (UnimplementedAgroCarbonServer) ListProofs(context.Context, *Empty) (*ListProofsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProofs not implemented")
}
func (UnimplementedAgroCarbonServer) ReviewProof(context.Context, *ReviewProofRequest) (*ProofResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReviewProof not implemented")
}
func (UnimplementedAgroCarbonServer) RecordCredit(context.Context, *RecordCreditRequest) (*CreditResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RecordCredit not implemented")
}
func (UnimplementedAgroCarbonServer) ListCredits(context.Context, *Empty) (*ListCreditsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCredits not implemented")
}
func (UnimplementedAgroCarbonServer) CreateListing(context.Context, *CreateListingRequest) (*ListingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateListing not implemented")
}
func (UnimplementedAgroCarbonServer) ListListings(context.Context, *Empty) (*ListListingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListListings not implemented")
}
func (UnimplementedAgroCarbonServer) ListAlerts(context.Context, *Empty) (*ListAlertsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAlerts not implemented")
}
func (UnimplementedAgroCarbonServer) MarkAlertRead(context.Context, *MarkAlertReadRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkAlertRead not implemented")
}
func (UnimplementedAgroCarbonServer) GenerateAlerts(context.Context, *Empty) (*ListAlertsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateAlerts not implemented")
}
func (UnimplementedAgroCarbonServer) ListRecommendations(context.Context, *Empty) (*ListRecommendationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRecommendations not implemented")
}
func (UnimplementedAgroCarbonServer) Dashboard(context.Context, *Empty) (*DashboardResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Dashboard not implemented")
}
func (UnimplementedAgroCarbonServer) CreditSummary(context.Context, *Empty) (*CreditSummaryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreditSummary not implemented")
}

// unary adapts a typed server method to a grpc.MethodDesc.
func unary[Req, Resp any](name string, call func(AgroCarbonServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AgroCarbonServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AgroCarbonServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// AgroCarbon_ServiceDesc describes the AgroCarbon service for grpc.Server.
var AgroCarbon_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AgroCarbonServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("RequestOTP", AgroCarbonServer.RequestOTP),
		unary("Login", AgroCarbonServer.Login),
		unary("Signup", AgroCarbonServer.Signup),
		unary("CurrentUser", AgroCarbonServer.CurrentUser),
		unary("UpdateProfile", AgroCarbonServer.UpdateProfile),
		unary("Catalog", AgroCarbonServer.Catalog),
		unary("SaveFarm", AgroCarbonServer.SaveFarm),
		unary("ListFarms", AgroCarbonServer.ListFarms),
		unary("DeclarePractice", AgroCarbonServer.DeclarePractice),
		unary("ListPractices", AgroCarbonServer.ListPractices),
		unary("SubmitProof", AgroCarbonServer.SubmitProof),
		unary("ListProofs", AgroCarbonServer.ListProofs),
		unary("ReviewProof", AgroCarbonServer.ReviewProof),
		unary("RecordCredit", AgroCarbonServer.RecordCredit),
		unary("ListCredits", AgroCarbonServer.ListCredits),
		unary("CreateListing", AgroCarbonServer.CreateListing),
		unary("ListListings", AgroCarbonServer.ListListings),
		unary("ListAlerts", AgroCarbonServer.ListAlerts),
		unary("MarkAlertRead", AgroCarbonServer.MarkAlertRead),
		unary("GenerateAlerts", AgroCarbonServer.GenerateAlerts),
		unary("ListRecommendations", AgroCarbonServer.ListRecommendations),
		unary("Dashboard", AgroCarbonServer.Dashboard),
		unary("CreditSummary", AgroCarbonServer.CreditSummary),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "agrocarbon/v1/agrocarbon",
}

// RegisterAgroCarbonServer registers srv on s.
func RegisterAgroCarbonServer(s grpc.ServiceRegistrar, srv AgroCarbonServer) {
	s.RegisterService(&AgroCarbon_ServiceDesc, srv)
}
