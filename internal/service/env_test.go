package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/agrocarbon/internal/limiter"
	"github.com/and161185/agrocarbon/internal/model"
	"github.com/and161185/agrocarbon/internal/repository"
	"github.com/and161185/agrocarbon/internal/repository/memory"
)

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}
func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return nil
}
func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}

type env struct {
	store    repository.Store
	users    *UserServiceImpl
	alerts   *AlertServiceImpl
	insights *InsightServiceImpl
	farms    *FarmServiceImpl
	ledger   *LedgerServiceImpl
	auth     *AuthServiceImpl
	lim      *fakeLimiter
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := memory.NewStore(memory.New())
	e := &env{store: store, lim: &fakeLimiter{allowOK: true}}
	e.users = NewUserService(store.Users, log)
	e.alerts = NewAlertService(store, log)
	e.insights = NewInsightService(store, e.alerts, log)
	e.farms = NewFarmService(store, e.insights, e.alerts, log)
	e.ledger = NewLedgerService(store, log)
	e.auth = NewAuthService(e.users, store.OTPs, []byte("test-key"), time.Hour, 5*time.Minute, e.lim, log)
	return e
}

// setNow pins the clock of every service.
func (e *env) setNow(now time.Time) {
	clock := func() time.Time { return now }
	e.users.now, e.alerts.now, e.insights.now, e.farms.now, e.ledger.now = clock, clock, clock, clock, clock
}

func (e *env) newUser(t *testing.T, mobile string) *model.User {
	t.Helper()
	u, err := e.users.SaveUser(context.Background(), model.User{Mobile: mobile, Name: "Farmer " + mobile})
	require.NoError(t, err)
	return u
}

func (e *env) newFarm(t *testing.T, userID uuid.UUID, area float64, crop string) *model.Farm {
	t.Helper()
	f, err := e.farms.SaveFarm(context.Background(), userID, FarmInput{Area: area, CropType: crop})
	require.NoError(t, err)
	return f
}
