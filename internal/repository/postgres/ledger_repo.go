package postgres

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/and161185/agrocarbon/internal/model"
)

// Money columns travel as text so no precision is lost between NUMERIC and decimal.

func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse money %q: %w", s, err)
	}
	return d, nil
}

// CreditRepo implements CreditRepository using PostgreSQL.
type CreditRepo struct{ db *DB }

// NewCreditRepo constructs a credit ledger repository.
func NewCreditRepo(db *DB) *CreditRepo { return &CreditRepo{db: db} }

// Create inserts a ledger record.
func (r *CreditRepo) Create(ctx context.Context, c *model.CarbonCredit) error {
	const q = `
INSERT INTO carbon_credits (id, user_id, credits, value, period, status, created_at)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)`
	_, err := r.db.Pool.Exec(ctx, q, c.ID, c.UserID, c.Credits, c.Value.String(), c.Period, c.Status, c.CreatedAt)
	return err
}

// ListByUser selects the user's ledger in insertion order.
func (r *CreditRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CarbonCredit, error) {
	const q = `
SELECT id, user_id, credits, value::text, period, status, created_at
FROM carbon_credits WHERE user_id=$1 ORDER BY seq`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CarbonCredit{}
	for rows.Next() {
		var (
			c     model.CarbonCredit
			value string
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.Credits, &value, &c.Period, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		if c.Value, err = parseMoney(value); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListingRepo implements ListingRepository using PostgreSQL.
type ListingRepo struct{ db *DB }

// NewListingRepo constructs a marketplace repository.
func NewListingRepo(db *DB) *ListingRepo { return &ListingRepo{db: db} }

// Create inserts a listing.
func (r *ListingRepo) Create(ctx context.Context, l *model.MarketListing) error {
	const q = `
INSERT INTO market_listings (id, user_id, seller_name, location, credits, price_per_credit, total_value, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8, $9)`
	_, err := r.db.Pool.Exec(ctx, q, l.ID, l.UserID, l.SellerName, l.Location, l.Credits,
		l.PricePerCredit.String(), l.TotalValue.String(), l.Status, l.CreatedAt)
	return err
}

// ListActive selects active listings in insertion order.
func (r *ListingRepo) ListActive(ctx context.Context) ([]model.MarketListing, error) {
	const q = `
SELECT id, user_id, seller_name, location, credits, price_per_credit::text, total_value::text, status, created_at
FROM market_listings WHERE status=$1 ORDER BY seq`
	rows, err := r.db.Pool.Query(ctx, q, model.ListingStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MarketListing{}
	for rows.Next() {
		var (
			l            model.MarketListing
			price, total string
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.SellerName, &l.Location, &l.Credits, &price, &total, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		if l.PricePerCredit, err = parseMoney(price); err != nil {
			return nil, err
		}
		if l.TotalValue, err = parseMoney(total); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
