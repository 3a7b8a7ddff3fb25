package memory

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
)

// UserRepo implements UserRepository in memory.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create appends a user unless the mobile is taken.
func (r *UserRepo) Create(_ context.Context, u *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, cur := range r.db.users {
		if cur.Mobile == u.Mobile {
			return errs.ErrAlreadyExists
		}
	}
	cpy := *u
	r.db.users = append(r.db.users, &cpy)
	return nil
}

// GetByID returns a copy of the user.
func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if u.ID == id {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

// GetByMobile returns the first user with the mobile.
func (r *UserRepo) GetByMobile(_ context.Context, mobile string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if u.Mobile == mobile {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

// Update replaces the stored user with the same ID.
func (r *UserRepo) Update(_ context.Context, u *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, cur := range r.db.users {
		if cur.ID == u.ID {
			cpy := *u
			r.db.users[i] = &cpy
			return nil
		}
	}
	return errs.ErrNotFound
}

// OTPRepo implements OTPRepository in memory.
type OTPRepo struct{ db *DB }

// NewOTPRepo constructs an OTP repository.
func NewOTPRepo(db *DB) *OTPRepo { return &OTPRepo{db: db} }

// Put replaces the challenge for the mobile.
func (r *OTPRepo) Put(_ context.Context, c model.OTPChallenge) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.otps[c.Mobile] = c
	return nil
}

// Get returns the pending challenge.
func (r *OTPRepo) Get(_ context.Context, mobile string) (*model.OTPChallenge, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.otps[mobile]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &c, nil
}

// Delete drops the challenge.
func (r *OTPRepo) Delete(_ context.Context, mobile string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.otps, mobile)
	return nil
}
