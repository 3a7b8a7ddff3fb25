package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

var userRowCols = []string{"id", "mobile", "name", "language", "village", "district", "state", "is_onboarded", "created_at"}

func TestUserRepo_Create_OK_and_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	now := time.Now()
	u := &model.User{ID: uuid.Must(uuid.NewV4()), Mobile: "9876543210", Name: "Raj", Language: model.LangHindi, CreatedAt: now}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(u.ID, u.Mobile, u.Name, "hi", "", "", "", false, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, u))

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(u.ID, u.Mobile, u.Name, "hi", "", "", "", false, now).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, u), errs.ErrAlreadyExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByMobile(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	now := time.Now()

	mock.ExpectQuery(`FROM users WHERE mobile=\$1`).
		WithArgs("9876543210").
		WillReturnRows(pgxmock.NewRows(userRowCols).
			AddRow(id, "9876543210", "Raj", "mr", "Wardha", "Wardha", "MH", true, now))
	u, err := r.GetByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, model.LangMarathi, u.Language)
	require.True(t, u.IsOnboarded)

	mock.ExpectQuery(`FROM users WHERE mobile=\$1`).
		WithArgs("0000000000").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByMobile(ctx, "0000000000")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	id := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`FROM users WHERE id=\$1`).WithArgs(id).WillReturnError(pgx.ErrNoRows)
	_, err := NewUserRepo(db).GetByID(context.Background(), id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_Update(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := &model.User{ID: uuid.Must(uuid.NewV4()), Name: "Raj", Language: model.LangEnglish, IsOnboarded: true}

	mock.ExpectExec(`UPDATE users SET name=\$2`).
		WithArgs(u.ID, "Raj", "en", "", "", "", true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.Update(ctx, u))

	mock.ExpectExec(`UPDATE users SET name=\$2`).
		WithArgs(u.ID, "Raj", "en", "", "", "", true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.Update(ctx, u), errs.ErrNotFound)
}

func TestOTPRepo_PutGetDelete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewOTPRepo(db)
	ctx := context.Background()
	exp := time.Now().Add(5 * time.Minute)
	c := model.OTPChallenge{Mobile: "9876543210", Hash: []byte("h"), Salt: []byte("s"), ExpiresAt: exp}

	mock.ExpectExec(`INSERT INTO otp_challenges .* ON CONFLICT \(mobile\) DO UPDATE`).
		WithArgs(c.Mobile, c.Hash, c.Salt, exp).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Put(ctx, c))

	mock.ExpectQuery(`SELECT mobile, hash, salt, expires_at FROM otp_challenges WHERE mobile=\$1`).
		WithArgs(c.Mobile).
		WillReturnRows(pgxmock.NewRows([]string{"mobile", "hash", "salt", "expires_at"}).
			AddRow(c.Mobile, []byte("h"), []byte("s"), exp))
	got, err := r.Get(ctx, c.Mobile)
	require.NoError(t, err)
	require.Equal(t, []byte("h"), got.Hash)

	mock.ExpectQuery(`FROM otp_challenges`).WithArgs("1").WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(ctx, "1")
	require.ErrorIs(t, err, errs.ErrNotFound)

	mock.ExpectExec(`DELETE FROM otp_challenges WHERE mobile=\$1`).
		WithArgs(c.Mobile).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, c.Mobile))

	require.NoError(t, mock.ExpectationsWereMet())
}
