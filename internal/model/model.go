// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Language is a UI language preference.
type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
	LangMarathi Language = "mr"
)

// DefaultLanguage is used when the user has not chosen one.
const DefaultLanguage = LangHindi

// LocalizedText carries the same text in every supported language.
type LocalizedText struct {
	En string
	Hi string
	Mr string
}

// For returns the text in lang, falling back to English.
func (t LocalizedText) For(lang Language) string {
	switch lang {
	case LangHindi:
		if t.Hi != "" {
			return t.Hi
		}
	case LangMarathi:
		if t.Mr != "" {
			return t.Mr
		}
	}
	return t.En
}

// LatLng is a WGS84 point.
type LatLng struct {
	Lat float64
	Lng float64
}

// User is a registered farmer.
type User struct {
	ID          uuid.UUID // PK
	Mobile      string    // unique, 10 digits
	Name        string
	Language    Language
	Village     string
	District    string
	State       string
	IsOnboarded bool // set once the first farm is mapped
	CreatedAt   time.Time
}

// UserPatch lists profile fields to merge into a user; nil fields are left untouched.
type UserPatch struct {
	Name        *string
	Language    *Language
	Village     *string
	District    *string
	State       *string
	IsOnboarded *bool
}

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Language != nil {
		u.Language = *p.Language
	}
	if p.Village != nil {
		u.Village = *p.Village
	}
	if p.District != nil {
		u.District = *p.District
	}
	if p.State != nil {
		u.State = *p.State
	}
	if p.IsOnboarded != nil {
		u.IsOnboarded = *p.IsOnboarded
	}
}

// Farm is a mapped plot owned by a user. Immutable after creation.
type Farm struct {
	ID        uuid.UUID
	UserID    uuid.UUID // FK -> users.id
	Area      float64   // acres
	CropType  string    // key into CropTypes
	Location  LatLng
	Boundary  []LatLng // closed polygon, >= 3 points
	CreatedAt time.Time
}

// Practice is one eco-practice adoption declared against a farm. Append-only.
type Practice struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	FarmID     uuid.UUID
	PracticeID string // key into EcoPractices
	StartDate  time.Time
	CreatedAt  time.Time
}

// ProofType is the kind of evidence submitted.
type ProofType string

const (
	ProofPhoto     ProofType = "photo"
	ProofSatellite ProofType = "satellite"
	ProofLog       ProofType = "log"
)

// Valid reports whether t is a known proof type.
func (t ProofType) Valid() bool {
	switch t {
	case ProofPhoto, ProofSatellite, ProofLog:
		return true
	}
	return false
}

// ProofStatus is the verification state of a proof.
type ProofStatus string

const (
	ProofPending  ProofStatus = "pending"
	ProofVerified ProofStatus = "verified"
	ProofRejected ProofStatus = "rejected"
)

// CanTransition reports whether a proof may move from s to next.
// Only pending proofs can be reviewed, and never back to pending.
func (s ProofStatus) CanTransition(next ProofStatus) bool {
	return s == ProofPending && (next == ProofVerified || next == ProofRejected)
}

// Proof is user-submitted evidence for a practice claim.
type Proof struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	FarmID      uuid.UUID
	PracticeID  string // optional
	Type        ProofType
	Description string
	FileName    string
	FileSize    int64
	Timestamp   time.Time
	Status      ProofStatus
	ReviewedAt  *time.Time
}

// CreditStatusVerified is the only status ledger records are created with.
const CreditStatusVerified = "verified"

// CarbonCredit is an issued-credits ledger record.
type CarbonCredit struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Credits   float64
	Value     decimal.Decimal // rupees
	Period    string          // e.g. "6 months"
	Status    string
	CreatedAt time.Time
}

// ListingStatusActive is the only listing status in use.
const ListingStatusActive = "active"

// MarketListing offers credits for sale.
type MarketListing struct {
	ID             uuid.UUID
	UserID         uuid.UUID // seller
	SellerName     string
	Location       string
	Credits        float64
	PricePerCredit decimal.Decimal
	TotalValue     decimal.Decimal // Credits * PricePerCredit
	Status         string
	CreatedAt      time.Time
}

// AlertType classifies alerts.
type AlertType string

const (
	AlertProofUpload         AlertType = "proof_upload"
	AlertPracticeSuggestion  AlertType = "practice_suggestion"
	AlertVerificationPending AlertType = "verification_pending"
	AlertCreditMilestone     AlertType = "credit_milestone"
	AlertMarketOpportunity   AlertType = "market_opportunity"
)

// Alert is a reminder shown to a user until read.
type Alert struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      AlertType
	Title     LocalizedText
	Message   LocalizedText
	Icon      string
	Action    string // page key to navigate to, empty if none
	IsRead    bool
	CreatedAt time.Time
}

// AlertDraft is an alert before it is stored.
type AlertDraft struct {
	Type    AlertType
	Title   LocalizedText
	Message LocalizedText
	Icon    string
	Action  string
}

// Priority ranks recommendations.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation suggests an eco-practice not yet adopted on a farm.
type Recommendation struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	FarmID           uuid.UUID
	PracticeID       string
	Title            LocalizedText
	Icon             string
	PotentialIncome  int64   // rupees
	PotentialCredits float64 // one decimal
	Priority         Priority
	CreatedAt        time.Time
}

// OTPChallenge is a pending one-time password for a mobile number.
type OTPChallenge struct {
	Mobile    string
	Hash      []byte // Argon2id(code, Salt)
	Salt      []byte
	ExpiresAt time.Time
}

// Tokens collects issued access tokens.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time
}
