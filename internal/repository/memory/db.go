// Package memory contains in-process implementations of repository interfaces.
// State lives for the lifetime of the process.
package memory

import (
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/agrocarbon/internal/model"
	"github.com/and161185/agrocarbon/internal/repository"
)

// DB is the shared in-memory state. Slices keep insertion order.
type DB struct {
	mu sync.RWMutex

	users     []*model.User
	otps      map[string]model.OTPChallenge
	farms     []*model.Farm
	practices []*model.Practice
	proofs    []*model.Proof
	credits   []*model.CarbonCredit
	listings  []*model.MarketListing
	alerts    []*model.Alert

	recsByFarm map[uuid.UUID][]model.Recommendation
	recFarms   []uuid.UUID // farms in order of first recommendation
}

// New creates an empty database.
func New() *DB {
	return &DB{
		otps:       map[string]model.OTPChallenge{},
		recsByFarm: map[uuid.UUID][]model.Recommendation{},
	}
}

// NewStore wires every in-memory repository over db.
func NewStore(db *DB) repository.Store {
	return repository.Store{
		Users:           NewUserRepo(db),
		OTPs:            NewOTPRepo(db),
		Farms:           NewFarmRepo(db),
		Practices:       NewPracticeRepo(db),
		Proofs:          NewProofRepo(db),
		Credits:         NewCreditRepo(db),
		Listings:        NewListingRepo(db),
		Alerts:          NewAlertRepo(db),
		Recommendations: NewRecommendationRepo(db),
	}
}
