package memory

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
)

func newID() uuid.UUID { return uuid.Must(uuid.NewV4()) }

func TestUserRepo_CreateGetUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewUserRepo(New())

	u := &model.User{ID: newID(), Mobile: "9876543210", Name: "Raj"}
	require.NoError(t, r.Create(ctx, u))
	require.ErrorIs(t, r.Create(ctx, &model.User{ID: newID(), Mobile: "9876543210"}), errs.ErrAlreadyExists)

	got, err := r.GetByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = r.GetByMobile(ctx, "0000000000")
	require.ErrorIs(t, err, errs.ErrNotFound)

	// returned values are copies
	got.Name = "mutated"
	again, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Raj", again.Name)

	again.IsOnboarded = true
	require.NoError(t, r.Update(ctx, again))
	again, err = r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, again.IsOnboarded)

	require.ErrorIs(t, r.Update(ctx, &model.User{ID: newID()}), errs.ErrNotFound)
	_, err = r.GetByID(ctx, newID())
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestOTPRepo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewOTPRepo(New())

	_, err := r.Get(ctx, "1")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, r.Put(ctx, model.OTPChallenge{Mobile: "1", Hash: []byte("a")}))
	require.NoError(t, r.Put(ctx, model.OTPChallenge{Mobile: "1", Hash: []byte("b")}))
	c, err := r.Get(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, []byte("b"), c.Hash)

	require.NoError(t, r.Delete(ctx, "1"))
	require.NoError(t, r.Delete(ctx, "1"))
	_, err = r.Get(ctx, "1")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestFarmPracticeProofRepos(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := New()
	farms, practices, proofs := NewFarmRepo(db), NewPracticeRepo(db), NewProofRepo(db)

	user, other := newID(), newID()
	f1 := &model.Farm{ID: newID(), UserID: user, Area: 2, Boundary: []model.LatLng{{Lat: 1, Lng: 2}}}
	f2 := &model.Farm{ID: newID(), UserID: other, Area: 3}
	require.NoError(t, farms.Create(ctx, f1))
	require.NoError(t, farms.Create(ctx, f2))

	list, err := farms.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	list[0].Boundary[0].Lat = 99
	got, err := farms.GetByID(ctx, f1.ID)
	require.NoError(t, err)
	require.Equal(t, 1.0, got.Boundary[0].Lat)

	empty, err := farms.ListByUser(ctx, newID())
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	require.NoError(t, practices.Create(ctx, &model.Practice{ID: newID(), UserID: user, FarmID: f1.ID, PracticeID: "organic"}))
	require.NoError(t, practices.Create(ctx, &model.Practice{ID: newID(), UserID: other, FarmID: f2.ID, PracticeID: "agroforestry"}))
	byFarm, err := practices.ListByFarm(ctx, f2.ID)
	require.NoError(t, err)
	require.Len(t, byFarm, 1)
	require.Equal(t, "agroforestry", byFarm[0].PracticeID)
	byUser, err := practices.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, byUser, 1)

	p := &model.Proof{ID: newID(), UserID: user, FarmID: f1.ID, Status: model.ProofPending}
	require.NoError(t, proofs.Create(ctx, p))
	at := time.Now()
	require.NoError(t, proofs.SetStatus(ctx, p.ID, model.ProofVerified, at))
	gotP, err := proofs.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, model.ProofVerified, gotP.Status)
	require.NotNil(t, gotP.ReviewedAt)
	require.ErrorIs(t, proofs.SetStatus(ctx, newID(), model.ProofVerified, at), errs.ErrNotFound)
}

func TestLedgerRepos(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := New()
	credits, listings := NewCreditRepo(db), NewListingRepo(db)

	user := newID()
	require.NoError(t, credits.Create(ctx, &model.CarbonCredit{ID: newID(), UserID: user, Credits: 1, Value: decimal.NewFromInt(1000)}))
	require.NoError(t, credits.Create(ctx, &model.CarbonCredit{ID: newID(), UserID: newID(), Credits: 2}))
	mine, err := credits.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.True(t, decimal.NewFromInt(1000).Equal(mine[0].Value))

	require.NoError(t, listings.Create(ctx, &model.MarketListing{ID: newID(), Status: model.ListingStatusActive}))
	require.NoError(t, listings.Create(ctx, &model.MarketListing{ID: newID(), Status: "sold"}))
	active, err := listings.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestAlertRepo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewAlertRepo(New())
	user := newID()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	old := &model.Alert{ID: newID(), UserID: user, Type: model.AlertProofUpload, CreatedAt: base}
	mid := &model.Alert{ID: newID(), UserID: user, Type: model.AlertPracticeSuggestion, CreatedAt: base.Add(time.Hour)}
	newest := &model.Alert{ID: newID(), UserID: user, Type: model.AlertProofUpload, CreatedAt: base.Add(2 * time.Hour)}
	foreign := &model.Alert{ID: newID(), UserID: newID(), Type: model.AlertProofUpload, CreatedAt: base}
	for _, a := range []*model.Alert{old, mid, newest, foreign} {
		require.NoError(t, r.Create(ctx, a))
	}

	list, err := r.ListUnreadByUser(ctx, user)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{newest.ID, mid.ID, old.ID}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})

	require.NoError(t, r.MarkRead(ctx, mid.ID))
	require.ErrorIs(t, r.MarkRead(ctx, newID()), errs.ErrNotFound)

	has, err := r.HasUnread(ctx, user, model.AlertProofUpload)
	require.NoError(t, err)
	require.True(t, has)

	require.NoError(t, r.MarkReadByType(ctx, user, model.AlertProofUpload))
	list, err = r.ListUnreadByUser(ctx, user)
	require.NoError(t, err)
	require.Empty(t, list)

	has, err = r.HasUnread(ctx, user, model.AlertProofUpload)
	require.NoError(t, err)
	require.False(t, has)

	// other users untouched
	got, err := r.GetByID(ctx, foreign.ID)
	require.NoError(t, err)
	require.False(t, got.IsRead)
}

func TestRecommendationRepo_ReplaceKeepsFarmOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewRecommendationRepo(New())
	user := newID()
	fa, fb := newID(), newID()

	rec := func(farm uuid.UUID, practice string) model.Recommendation {
		return model.Recommendation{ID: newID(), UserID: user, FarmID: farm, PracticeID: practice}
	}

	require.NoError(t, r.ReplaceForFarm(ctx, fa, []model.Recommendation{rec(fa, "organic"), rec(fa, "agroforestry")}))
	require.NoError(t, r.ReplaceForFarm(ctx, fb, []model.Recommendation{rec(fb, "organic")}))
	require.NoError(t, r.ReplaceForFarm(ctx, fa, []model.Recommendation{rec(fa, "reduced_tillage")}))

	list, err := r.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, fa, list[0].FarmID)
	require.Equal(t, "reduced_tillage", list[0].PracticeID)
	require.Equal(t, fb, list[1].FarmID)

	other, err := r.ListByUser(ctx, newID())
	require.NoError(t, err)
	require.Empty(t, other)
}
