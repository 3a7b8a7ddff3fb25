package repository

import (
	"context"
	"time"

	"github.com/and161185/agrocarbon/internal/model"
	"github.com/gofrs/uuid/v5"
)

// FarmRepository stores mapped farms.
type FarmRepository interface {
	// Create appends a farm.
	Create(ctx context.Context, f *model.Farm) error
	// GetByID loads a farm by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Farm, error)
	// ListByUser returns the user's farms in creation order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Farm, error)
}

// PracticeRepository stores practice declarations (append-only).
type PracticeRepository interface {
	Create(ctx context.Context, p *model.Practice) error
	// ListByUser returns the user's declarations in creation order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Practice, error)
	// ListByFarm returns the farm's declarations in creation order.
	ListByFarm(ctx context.Context, farmID uuid.UUID) ([]model.Practice, error)
}

// ProofRepository stores submitted proofs.
type ProofRepository interface {
	Create(ctx context.Context, p *model.Proof) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Proof, error)
	// ListByUser returns the user's proofs in submission order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Proof, error)
	// SetStatus records a review outcome.
	SetStatus(ctx context.Context, id uuid.UUID, status model.ProofStatus, reviewedAt time.Time) error
}
