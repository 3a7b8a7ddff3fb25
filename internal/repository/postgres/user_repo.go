package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `id, mobile, name, language, village, district, state, is_onboarded, created_at`

// Create inserts a new user row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, mobile, name, language, village, district, state, is_onboarded, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Pool.Exec(ctx, q,
		u.ID, u.Mobile, u.Name, string(u.Language), u.Village, u.District, u.State, u.IsOnboarded, u.CreatedAt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id)
}

// GetByMobile selects a user by mobile number.
func (r *UserRepo) GetByMobile(ctx context.Context, mobile string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userCols+` FROM users WHERE mobile=$1`, mobile)
}

func (r *UserRepo) getOne(ctx context.Context, q string, arg any) (*model.User, error) {
	var (
		u    model.User
		lang string
	)
	err := r.db.Pool.QueryRow(ctx, q, arg).Scan(
		&u.ID, &u.Mobile, &u.Name, &lang, &u.Village, &u.District, &u.State, &u.IsOnboarded, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	u.Language = model.Language(lang)
	return &u, nil
}

// Update overwrites the profile columns of u.ID.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	const q = `
UPDATE users
SET name=$2, language=$3, village=$4, district=$5, state=$6, is_onboarded=$7
WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, u.ID, u.Name, string(u.Language), u.Village, u.District, u.State, u.IsOnboarded)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// OTPRepo implements OTPRepository using PostgreSQL.
type OTPRepo struct{ db *DB }

// NewOTPRepo constructs an OTP repository.
func NewOTPRepo(db *DB) *OTPRepo { return &OTPRepo{db: db} }

// Put upserts the challenge for c.Mobile.
func (r *OTPRepo) Put(ctx context.Context, c model.OTPChallenge) error {
	const q = `
INSERT INTO otp_challenges (mobile, hash, salt, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (mobile) DO UPDATE SET hash=EXCLUDED.hash, salt=EXCLUDED.salt, expires_at=EXCLUDED.expires_at`
	_, err := r.db.Pool.Exec(ctx, q, c.Mobile, c.Hash, c.Salt, c.ExpiresAt)
	return err
}

// Get selects the pending challenge.
func (r *OTPRepo) Get(ctx context.Context, mobile string) (*model.OTPChallenge, error) {
	const q = `SELECT mobile, hash, salt, expires_at FROM otp_challenges WHERE mobile=$1`
	var c model.OTPChallenge
	if err := r.db.Pool.QueryRow(ctx, q, mobile).Scan(&c.Mobile, &c.Hash, &c.Salt, &c.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes the challenge.
func (r *OTPRepo) Delete(ctx context.Context, mobile string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM otp_challenges WHERE mobile=$1`, mobile)
	return err
}
