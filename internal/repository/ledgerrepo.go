package repository

import (
	"context"

	"github.com/and161185/agrocarbon/internal/model"
	"github.com/gofrs/uuid/v5"
)

// CreditRepository stores issued carbon credit records.
type CreditRepository interface {
	Create(ctx context.Context, c *model.CarbonCredit) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CarbonCredit, error)
}

// ListingRepository stores marketplace listings.
type ListingRepository interface {
	Create(ctx context.Context, l *model.MarketListing) error
	// ListActive returns all active listings in creation order.
	ListActive(ctx context.Context) ([]model.MarketListing, error)
}
