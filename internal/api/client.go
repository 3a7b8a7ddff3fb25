package api

import (
	"context"

	"google.golang.org/grpc"
)

// AgroCarbonClient is the client API for the AgroCarbon service.
// Every call is sent with the JSON content-subtype.
type AgroCarbonClient interface {
	RequestOTP(ctx context.Context, in *RequestOTPRequest, opts ...grpc.CallOption) (*RequestOTPResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	CurrentUser(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UserResponse, error)
	Catalog(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CatalogResponse, error)
	SaveFarm(ctx context.Context, in *SaveFarmRequest, opts ...grpc.CallOption) (*FarmResponse, error)
	ListFarms(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListFarmsResponse, error)
	DeclarePractice(ctx context.Context, in *DeclarePracticeRequest, opts ...grpc.CallOption) (*PracticeResponse, error)
	ListPractices(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListPracticesResponse, error)
	SubmitProof(ctx context.Context, in *SubmitProofRequest, opts ...grpc.CallOption) (*ProofResponse, error)
	ListProofs(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListProofsResponse, error)
	ReviewProof(ctx context.Context, in *ReviewProofRequest, opts ...grpc.CallOption) (*ProofResponse, error)
	RecordCredit(ctx context.Context, in *RecordCreditRequest, opts ...grpc.CallOption) (*CreditResponse, error)
	ListCredits(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListCreditsResponse, error)
	CreateListing(ctx context.Context, in *CreateListingRequest, opts ...grpc.CallOption) (*ListingResponse, error)
	ListListings(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListListingsResponse, error)
	ListAlerts(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListAlertsResponse, error)
	MarkAlertRead(ctx context.Context, in *MarkAlertReadRequest, opts ...grpc.CallOption) (*Empty, error)
	GenerateAlerts(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListAlertsResponse, error)
	ListRecommendations(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListRecommendationsResponse, error)
	Dashboard(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*DashboardResponse, error)
	CreditSummary(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CreditSummaryResponse, error)
}

type agroCarbonClient struct {
	cc grpc.ClientConnInterface
}

// NewAgroCarbonClient wraps cc.
func NewAgroCarbonClient(cc grpc.ClientConnInterface) AgroCarbonClient {
	return &agroCarbonClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *agroCarbonClient) RequestOTP(ctx context.Context, in *RequestOTPRequest, opts ...grpc.CallOption) (*RequestOTPResponse, error) {
	return invoke[RequestOTPResponse](ctx, c.cc, "RequestOTP", in, opts)
}

func (c *agroCarbonClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, "Login", in, opts)
}

func (c *agroCarbonClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, "Signup", in, opts)
}

func (c *agroCarbonClient) CurrentUser(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, "CurrentUser", in, opts)
}

func (c *agroCarbonClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, "UpdateProfile", in, opts)
}

func (c *agroCarbonClient) Catalog(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CatalogResponse, error) {
	return invoke[CatalogResponse](ctx, c.cc, "Catalog", in, opts)
}

func (c *agroCarbonClient) SaveFarm(ctx context.Context, in *SaveFarmRequest, opts ...grpc.CallOption) (*FarmResponse, error) {
	return invoke[FarmResponse](ctx, c.cc, "SaveFarm", in, opts)
}

func (c *agroCarbonClient) ListFarms(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListFarmsResponse, error) {
	return invoke[ListFarmsResponse](ctx, c.cc, "ListFarms", in, opts)
}

func (c *agroCarbonClient) DeclarePractice(ctx context.Context, in *DeclarePracticeRequest, opts ...grpc.CallOption) (*PracticeResponse, error) {
	return invoke[PracticeResponse](ctx, c.cc, "DeclarePractice", in, opts)
}

func (c *agroCarbonClient) ListPractices(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListPracticesResponse, error) {
	return invoke[ListPracticesResponse](ctx, c.cc, "ListPractices", in, opts)
}

func (c *agroCarbonClient) SubmitProof(ctx context.Context, in *SubmitProofRequest, opts ...grpc.CallOption) (*ProofResponse, error) {
	return invoke[ProofResponse](ctx, c.cc, "SubmitProof", in, opts)
}

func (c *agroCarbonClient) ListProofs(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListProofsResponse, error) {
	return invoke[ListProofsResponse](ctx, c.cc, "ListProofs", in, opts)
}

func (c *agroCarbonClient) ReviewProof(ctx context.Context, in *ReviewProofRequest, opts ...grpc.CallOption) (*ProofResponse, error) {
	return invoke[ProofResponse](ctx, c.cc, "ReviewProof", in, opts)
}

func (c *agroCarbonClient) RecordCredit(ctx context.Context, in *RecordCreditRequest, opts ...grpc.CallOption) (*CreditResponse, error) {
	return invoke[CreditResponse](ctx, c.cc, "RecordCredit", in, opts)
}

func (c *agroCarbonClient) ListCredits(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListCreditsResponse, error) {
	return invoke[ListCreditsResponse](ctx, c.cc, "ListCredits", in, opts)
}

func (c *agroCarbonClient) CreateListing(ctx context.Context, in *CreateListingRequest, opts ...grpc.CallOption) (*ListingResponse, error) {
	return invoke[ListingResponse](ctx, c.cc, "CreateListing", in, opts)
}

func (c *agroCarbonClient) ListListings(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListListingsResponse, error) {
	return invoke[ListListingsResponse](ctx, c.cc, "ListListings", in, opts)
}

func (c *agroCarbonClient) ListAlerts(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListAlertsResponse, error) {
	return invoke[ListAlertsResponse](ctx, c.cc, "ListAlerts", in, opts)
}

func (c *agroCarbonClient) MarkAlertRead(ctx context.Context, in *MarkAlertReadRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "MarkAlertRead", in, opts)
}

func (c *agroCarbonClient) GenerateAlerts(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListAlertsResponse, error) {
	return invoke[ListAlertsResponse](ctx, c.cc, "GenerateAlerts", in, opts)
}

func (c *agroCarbonClient) ListRecommendations(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListRecommendationsResponse, error) {
	return invoke[ListRecommendationsResponse](ctx, c.cc, "ListRecommendations", in, opts)
}

func (c *agroCarbonClient) Dashboard(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*DashboardResponse, error) {
	return invoke[DashboardResponse](ctx, c.cc, "Dashboard", in, opts)
}

func (c *agroCarbonClient) CreditSummary(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CreditSummaryResponse, error) {
	return invoke[CreditSummaryResponse](ctx, c.cc, "CreditSummary", in, opts)
}
