package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
)

func TestValidMobile(t *testing.T) {
	t.Parallel()

	require.True(t, ValidMobile("9876543210"))
	require.False(t, ValidMobile("987654321"))
	require.False(t, ValidMobile("98765432100"))
	require.False(t, ValidMobile("98765x3210"))
	require.False(t, ValidMobile(""))
}

func TestUserService_SaveUser(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	u, err := e.users.SaveUser(ctx, model.User{Mobile: "9123456789", Name: "Sita", IsOnboarded: true})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, u.ID)
	require.False(t, u.CreatedAt.IsZero())
	require.False(t, u.IsOnboarded)
	require.Equal(t, model.LangHindi, u.Language)

	_, err = e.users.SaveUser(ctx, model.User{Mobile: "9123456789", Name: "Other"})
	require.ErrorIs(t, err, errs.ErrAlreadyExists)

	_, err = e.users.SaveUser(ctx, model.User{Mobile: "12", Name: "Bad"})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = e.users.SaveUser(ctx, model.User{Mobile: "9000000001"})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = e.users.SaveUser(ctx, model.User{Mobile: "9000000001", Name: "X", Language: "fr"})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestUserService_UpdateAndFind(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	u := e.newUser(t, "9123456789")

	village, lang := "Wardha", model.LangMarathi
	got, err := e.users.UpdateUser(ctx, u.ID, model.UserPatch{Village: &village, Language: &lang})
	require.NoError(t, err)
	require.Equal(t, "Wardha", got.Village)
	require.Equal(t, u.Name, got.Name)

	found, err := e.users.FindUserByMobile(ctx, "9123456789")
	require.NoError(t, err)
	require.Equal(t, model.LangMarathi, found.Language)

	_, err = e.users.UpdateUser(ctx, uuid.Must(uuid.NewV4()), model.UserPatch{Village: &village})
	require.ErrorIs(t, err, errs.ErrNotFound)

	bad := model.Language("xx")
	_, err = e.users.UpdateUser(ctx, u.ID, model.UserPatch{Language: &bad})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = e.users.FindUserByMobile(ctx, "0000000000")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
