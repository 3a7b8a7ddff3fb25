package api

import "time"

// Empty is used by calls without parameters or results.
type Empty struct{}

// LocalizedText carries the same text in every supported language.
type LocalizedText struct {
	En string `json:"en"`
	Hi string `json:"hi"`
	Mr string `json:"mr"`
}

// LatLng is a WGS84 point.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type User struct {
	ID          string    `json:"id"`
	Mobile      string    `json:"mobile"`
	Name        string    `json:"name"`
	Language    string    `json:"language"`
	Village     string    `json:"village,omitempty"`
	District    string    `json:"district,omitempty"`
	State       string    `json:"state,omitempty"`
	IsOnboarded bool      `json:"is_onboarded"`
	CreatedAt   time.Time `json:"created_at"`
}

type Farm struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Area      float64   `json:"area"`
	CropType  string    `json:"crop_type"`
	Location  LatLng    `json:"location"`
	Boundary  []LatLng  `json:"boundary"`
	CreatedAt time.Time `json:"created_at"`
}

type Practice struct {
	ID         string    `json:"id"`
	FarmID     string    `json:"farm_id"`
	PracticeID string    `json:"practice_id"`
	StartDate  time.Time `json:"start_date"`
	CreatedAt  time.Time `json:"created_at"`
}

type Proof struct {
	ID          string     `json:"id"`
	FarmID      string     `json:"farm_id"`
	PracticeID  string     `json:"practice_id,omitempty"`
	Type        string     `json:"type"`
	Description string     `json:"description,omitempty"`
	FileName    string     `json:"file_name,omitempty"`
	FileSize    int64      `json:"file_size,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	Status      string     `json:"status"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
}

// CarbonCredit is a ledger record; Value is a decimal string in rupees.
type CarbonCredit struct {
	ID        string    `json:"id"`
	Credits   float64   `json:"credits"`
	Value     string    `json:"value"`
	Period    string    `json:"period,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Listing is a marketplace offer; money fields are decimal strings.
type Listing struct {
	ID             string    `json:"id"`
	SellerID       string    `json:"seller_id"`
	SellerName     string    `json:"seller_name,omitempty"`
	Location       string    `json:"location,omitempty"`
	Credits        float64   `json:"credits"`
	PricePerCredit string    `json:"price_per_credit"`
	TotalValue     string    `json:"total_value"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type Alert struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Title     LocalizedText `json:"title"`
	Message   LocalizedText `json:"message"`
	Icon      string        `json:"icon,omitempty"`
	Action    string        `json:"action,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type Recommendation struct {
	ID               string        `json:"id"`
	FarmID           string        `json:"farm_id"`
	PracticeID       string        `json:"practice_id"`
	Title            LocalizedText `json:"title"`
	Icon             string        `json:"icon,omitempty"`
	PotentialIncome  int64         `json:"potential_income"`
	PotentialCredits float64       `json:"potential_credits"`
	Priority         string        `json:"priority"`
}

type EcoPractice struct {
	ID             string        `json:"id"`
	Name           LocalizedText `json:"name"`
	Icon           string        `json:"icon"`
	CarbonImpact   float64       `json:"carbon_impact"`
	Description    string        `json:"description"`
	IncomeIncrease int64         `json:"income_increase"`
}

type CropType struct {
	ID           string        `json:"id"`
	Name         LocalizedText `json:"name"`
	CarbonFactor float64       `json:"carbon_factor"`
}

type PracticeStat struct {
	PracticeID   string        `json:"practice_id"`
	Name         LocalizedText `json:"name"`
	Count        int           `json:"count"`
	CarbonImpact float64       `json:"carbon_impact"`
}

// --- auth ---

type RequestOTPRequest struct {
	Mobile string `json:"mobile"`
}

// RequestOTPResponse carries the code only when the server runs in dev mode.
type RequestOTPResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
	DevCode   string    `json:"dev_code,omitempty"`
}

type LoginRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

type SignupRequest struct {
	Mobile   string `json:"mobile"`
	OTP      string `json:"otp"`
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
	Village  string `json:"village,omitempty"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
}

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// --- profile ---

// UpdateProfileRequest lists fields to change; nil leaves a field untouched.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Language *string `json:"language,omitempty"`
	Village  *string `json:"village,omitempty"`
	District *string `json:"district,omitempty"`
	State    *string `json:"state,omitempty"`
}

type UserResponse struct {
	User User `json:"user"`
}

type CatalogResponse struct {
	Practices []EcoPractice `json:"practices"`
	Crops     []CropType    `json:"crops"`
}

// --- farms ---

// SaveFarmRequest with Area <= 0 derives the area from Boundary.
type SaveFarmRequest struct {
	Area     float64  `json:"area,omitempty"`
	CropType string   `json:"crop_type"`
	Location LatLng   `json:"location"`
	Boundary []LatLng `json:"boundary,omitempty"`
}

type FarmResponse struct {
	Farm Farm `json:"farm"`
}

type ListFarmsResponse struct {
	Farms []Farm `json:"farms"`
}

type DeclarePracticeRequest struct {
	FarmID     string     `json:"farm_id"`
	PracticeID string     `json:"practice_id"`
	StartDate  *time.Time `json:"start_date,omitempty"`
}

type PracticeResponse struct {
	Practice Practice `json:"practice"`
}

type ListPracticesResponse struct {
	Practices []Practice `json:"practices"`
}

type SubmitProofRequest struct {
	FarmID      string `json:"farm_id"`
	PracticeID  string `json:"practice_id,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	FileName    string `json:"file_name,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
}

type ReviewProofRequest struct {
	ProofID string `json:"proof_id"`
	Status  string `json:"status"`
}

type ProofResponse struct {
	Proof Proof `json:"proof"`
}

type ListProofsResponse struct {
	Proofs []Proof `json:"proofs"`
}

// --- ledger ---

type RecordCreditRequest struct {
	UserID  string  `json:"user_id"`
	Credits float64 `json:"credits"`
	Value   string  `json:"value"`
	Period  string  `json:"period,omitempty"`
}

type CreditResponse struct {
	Credit CarbonCredit `json:"credit"`
}

type ListCreditsResponse struct {
	Credits []CarbonCredit `json:"credits"`
}

type CreateListingRequest struct {
	Credits        float64 `json:"credits"`
	PricePerCredit string  `json:"price_per_credit"`
}

type ListingResponse struct {
	Listing Listing `json:"listing"`
}

type ListListingsResponse struct {
	Listings []Listing `json:"listings"`
}

// --- alerts and insights ---

type ListAlertsResponse struct {
	Alerts []Alert `json:"alerts"`
}

type MarkAlertReadRequest struct {
	AlertID string `json:"alert_id"`
}

type ListRecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

type DashboardResponse struct {
	User            User             `json:"user"`
	Score           int              `json:"score"`
	Credits         float64          `json:"credits"`
	TotalEarnings   string           `json:"total_earnings"`
	Farms           int              `json:"farms"`
	Practices       int              `json:"practices"`
	Proofs          int              `json:"proofs"`
	VerifiedProofs  int              `json:"verified_proofs"`
	Alerts          []Alert          `json:"alerts"`
	Recommendations []Recommendation `json:"recommendations"`
}

type CreditSummaryResponse struct {
	Credits       float64        `json:"credits"`
	Score         int            `json:"score"`
	Farms         int            `json:"farms"`
	Breakdown     []PracticeStat `json:"breakdown"`
	Trees         int64          `json:"trees"`
	Cars          int64          `json:"cars"`
	CertificateID string         `json:"certificate_id"`
}
