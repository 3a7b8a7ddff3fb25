// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/agrocarbon/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository provides CRUD access for users.
type UserRepository interface {
	// Create inserts a new user; a taken mobile yields errs.ErrAlreadyExists.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByMobile loads the user registered with mobile.
	GetByMobile(ctx context.Context, mobile string) (*model.User, error)
	// Update overwrites the stored profile of u.ID.
	Update(ctx context.Context, u *model.User) error
}

// OTPRepository stores pending login challenges, one per mobile.
type OTPRepository interface {
	// Put replaces the challenge for c.Mobile.
	Put(ctx context.Context, c model.OTPChallenge) error
	// Get returns the challenge for mobile.
	Get(ctx context.Context, mobile string) (*model.OTPChallenge, error)
	// Delete drops the challenge for mobile; missing is not an error.
	Delete(ctx context.Context, mobile string) error
}
