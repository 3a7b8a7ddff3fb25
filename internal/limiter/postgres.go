package limiter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PG is a PostgreSQL-backed limiter with a failure window and lockout.
type PG struct {
	pool     pgxQuerier
	window   time.Duration
	maxFails int
	blockFor time.Duration
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPG constructs a PostgreSQL-backed limiter.
func NewPG(pool *pgxpool.Pool, window time.Duration, maxFails int, blockFor time.Duration) *PG {
	return &PG{pool: pool, window: window, maxFails: maxFails, blockFor: blockFor}
}

// NewPGWithQuerier constructs a limiter over any querier, e.g. a test double.
func NewPGWithQuerier(q pgxQuerier, window time.Duration, maxFails int, blockFor time.Duration) *PG {
	return &PG{pool: q, window: window, maxFails: maxFails, blockFor: blockFor}
}

// Allow reports whether an attempt is currently allowed and a retry-after duration.
func (l *PG) Allow(ctx context.Context, mobile string, ipHash []byte) (bool, time.Duration, error) {
	const q = `SELECT blocked_until FROM otp_limiter WHERE mobile=$1 AND ip_hash=$2`
	var blockedUntil time.Time
	err := l.pool.QueryRow(ctx, q, mobile, ipHash).Scan(&blockedUntil)
	switch {
	case err == nil:
		if blockedUntil.After(time.Now()) {
			return false, time.Until(blockedUntil), nil
		}
		return true, 0, nil
	case errors.Is(err, pgx.ErrNoRows):
		return true, 0, nil
	default:
		return false, 0, err
	}
}

// Success resets counters for (mobile, ip).
func (l *PG) Success(ctx context.Context, mobile string, ipHash []byte) error {
	const q = `
INSERT INTO otp_limiter (mobile, ip_hash, fail_count, blocked_until, updated_at)
VALUES ($1,$2,0,'epoch',now())
ON CONFLICT (mobile, ip_hash)
DO UPDATE SET fail_count=0, blocked_until='epoch', updated_at=now()`
	_, err := l.pool.Exec(ctx, q, mobile, ipHash)
	return err
}

// Failure records a failed attempt; may set a block until a future time.
// A lapsed block is cleared and the count restarts at one.
func (l *PG) Failure(ctx context.Context, mobile string, ipHash []byte) (bool, time.Duration, error) {
	now := time.Now()

	const q = `
INSERT INTO otp_limiter (mobile, ip_hash, fail_count, blocked_until, updated_at)
VALUES ($1,$2,1,'epoch',now())
ON CONFLICT (mobile, ip_hash) DO UPDATE
SET
  fail_count = CASE
    WHEN EXCLUDED.updated_at - otp_limiter.updated_at > $3::interval THEN 1
    WHEN otp_limiter.blocked_until > 'epoch' AND otp_limiter.blocked_until <= now() THEN 1
    ELSE otp_limiter.fail_count + 1 END,
  blocked_until = CASE WHEN otp_limiter.blocked_until <= now() THEN 'epoch'::timestamptz ELSE otp_limiter.blocked_until END,
  updated_at = now()
RETURNING fail_count`
	var fails int
	if err := l.pool.QueryRow(ctx, q, mobile, ipHash, l.window).Scan(&fails); err != nil {
		return false, 0, err
	}
	if fails >= l.maxFails {
		blockUntil := now.Add(l.blockFor)
		const upd = `UPDATE otp_limiter SET blocked_until=$3 WHERE mobile=$1 AND ip_hash=$2`
		if _, err := l.pool.Exec(ctx, upd, mobile, ipHash, blockUntil); err != nil {
			return false, 0, err
		}
		return true, l.blockFor, nil
	}
	return false, 0, nil
}
