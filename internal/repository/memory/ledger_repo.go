package memory

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/agrocarbon/internal/model"
)

// CreditRepo implements CreditRepository in memory.
type CreditRepo struct{ db *DB }

// NewCreditRepo constructs a credit ledger repository.
func NewCreditRepo(db *DB) *CreditRepo { return &CreditRepo{db: db} }

// Create appends a ledger record.
func (r *CreditRepo) Create(_ context.Context, c *model.CarbonCredit) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cpy := *c
	r.db.credits = append(r.db.credits, &cpy)
	return nil
}

// ListByUser filters ledger records by user.
func (r *CreditRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.CarbonCredit, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []model.CarbonCredit{}
	for _, c := range r.db.credits {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

// ListingRepo implements ListingRepository in memory.
type ListingRepo struct{ db *DB }

// NewListingRepo constructs a listing repository.
func NewListingRepo(db *DB) *ListingRepo { return &ListingRepo{db: db} }

// Create appends a listing.
func (r *ListingRepo) Create(_ context.Context, l *model.MarketListing) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cpy := *l
	r.db.listings = append(r.db.listings, &cpy)
	return nil
}

// ListActive returns listings with the active status.
func (r *ListingRepo) ListActive(_ context.Context) ([]model.MarketListing, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []model.MarketListing{}
	for _, l := range r.db.listings {
		if l.Status == model.ListingStatusActive {
			out = append(out, *l)
		}
	}
	return out, nil
}
