package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
	"github.com/and161185/agrocarbon/internal/repository"
)

// CreditInput is an issued credits record.
type CreditInput struct {
	Credits float64
	Value   decimal.Decimal
	Period  string
}

// ListingInput offers credits on the marketplace.
type ListingInput struct {
	Credits        float64
	PricePerCredit decimal.Decimal
}

// LedgerService manages issued credits and marketplace listings.
type LedgerService interface {
	// RecordCredit stores a verified ledger record for the user.
	RecordCredit(ctx context.Context, userID uuid.UUID, in CreditInput) (*model.CarbonCredit, error)
	ListCredits(ctx context.Context, userID uuid.UUID) ([]model.CarbonCredit, error)
	// CreateListing publishes an active listing sold by the user.
	CreateListing(ctx context.Context, userID uuid.UUID, in ListingInput) (*model.MarketListing, error)
	// ListListings returns all active listings.
	ListListings(ctx context.Context) ([]model.MarketListing, error)
}

type LedgerServiceImpl struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewLedgerService constructs LedgerService.
func NewLedgerService(store repository.Store, log *zap.Logger) *LedgerServiceImpl {
	return &LedgerServiceImpl{store: store, log: log, now: time.Now}
}

// RecordCredit requires positive credits and a non-negative value.
func (s *LedgerServiceImpl) RecordCredit(ctx context.Context, userID uuid.UUID, in CreditInput) (*model.CarbonCredit, error) {
	if in.Credits <= 0 {
		return nil, fmt.Errorf("%w: credits must be positive", errs.ErrInvalidArgument)
	}
	if in.Value.IsNegative() {
		return nil, fmt.Errorf("%w: negative value", errs.ErrInvalidArgument)
	}
	if _, err := s.store.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	c := &model.CarbonCredit{
		ID:        id,
		UserID:    userID,
		Credits:   in.Credits,
		Value:     in.Value,
		Period:    in.Period,
		Status:    model.CreditStatusVerified,
		CreatedAt: s.now(),
	}
	if err := s.store.Credits.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCredits returns the user's ledger in creation order.
func (s *LedgerServiceImpl) ListCredits(ctx context.Context, userID uuid.UUID) ([]model.CarbonCredit, error) {
	return s.store.Credits.ListByUser(ctx, userID)
}

// CreateListing fills seller details from the profile and prices the lot.
func (s *LedgerServiceImpl) CreateListing(ctx context.Context, userID uuid.UUID, in ListingInput) (*model.MarketListing, error) {
	if in.Credits <= 0 {
		return nil, fmt.Errorf("%w: credits must be positive", errs.ErrInvalidArgument)
	}
	if !in.PricePerCredit.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", errs.ErrInvalidArgument)
	}
	u, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	l := &model.MarketListing{
		ID:             id,
		UserID:         userID,
		SellerName:     u.Name,
		Location:       sellerLocation(u),
		Credits:        in.Credits,
		PricePerCredit: in.PricePerCredit,
		TotalValue:     ListingTotal(in.Credits, in.PricePerCredit),
		Status:         model.ListingStatusActive,
		CreatedAt:      s.now(),
	}
	if err := s.store.Listings.Create(ctx, l); err != nil {
		return nil, err
	}
	s.log.Info("listing created", zap.String("user_id", userID.String()), zap.Float64("credits", in.Credits))
	return l, nil
}

// ListListings returns active listings in creation order.
func (s *LedgerServiceImpl) ListListings(ctx context.Context) ([]model.MarketListing, error) {
	return s.store.Listings.ListActive(ctx)
}

// ListingTotal is credits x price rounded to paise.
func ListingTotal(credits float64, price decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(credits).Mul(price).Round(2)
}

func sellerLocation(u *model.User) string {
	switch {
	case u.District != "":
		return u.District
	case u.Village != "":
		return u.Village
	default:
		return u.State
	}
}
