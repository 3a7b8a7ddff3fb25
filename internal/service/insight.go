package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/and161185/agrocarbon/internal/insight"
	"github.com/and161185/agrocarbon/internal/model"
	"github.com/and161185/agrocarbon/internal/repository"
)

// maxListedRecommendations bounds ListRecommendations.
const maxListedRecommendations = 3

// Dashboard is the home screen snapshot of one user.
type Dashboard struct {
	User            model.User
	Score           int
	Credits         float64         // derived estimate
	TotalEarnings   decimal.Decimal // sum of ledger values
	Farms           int
	Practices       int
	Proofs          int
	VerifiedProofs  int
	Alerts          []model.Alert
	Recommendations []model.Recommendation
}

// CreditSummary is the credits page report.
type CreditSummary struct {
	Credits       float64
	Score         int
	Farms         int
	Breakdown     []insight.PracticeStat
	Trees         int64
	Cars          int64
	CertificateID string
}

// InsightService derives scores, credits and recommendations from stored activity.
type InsightService interface {
	// GenerateRecommendations replaces the stored recommendations of a farm.
	GenerateRecommendations(ctx context.Context, farmID uuid.UUID) ([]model.Recommendation, error)
	// ListRecommendations returns up to three stored recommendations.
	ListRecommendations(ctx context.Context, userID uuid.UUID) ([]model.Recommendation, error)
	// CarbonScore returns the user's 0..100 green score.
	CarbonScore(ctx context.Context, userID uuid.UUID) (int, error)
	// CarbonCredits returns the user's derived credit estimate.
	CarbonCredits(ctx context.Context, userID uuid.UUID) (float64, error)
	// Dashboard refreshes smart alerts and assembles the home snapshot.
	Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
	// CreditSummary assembles the credits report.
	CreditSummary(ctx context.Context, userID uuid.UUID) (*CreditSummary, error)
}

type InsightServiceImpl struct {
	store  repository.Store
	alerts AlertService
	log    *zap.Logger
	now    func() time.Time
}

// NewInsightService constructs InsightService.
func NewInsightService(store repository.Store, alerts AlertService, log *zap.Logger) *InsightServiceImpl {
	return &InsightServiceImpl{store: store, alerts: alerts, log: log, now: time.Now}
}

// GenerateRecommendations returns errs.ErrNotFound for an unknown farm.
func (s *InsightServiceImpl) GenerateRecommendations(ctx context.Context, farmID uuid.UUID) ([]model.Recommendation, error) {
	farm, err := s.store.Farms.GetByID(ctx, farmID)
	if err != nil {
		return nil, err
	}
	practices, err := s.store.Practices.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, err
	}

	recs := insight.Recommend(*farm, practices)
	now := s.now()
	for i := range recs {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		recs[i].ID = id
		recs[i].CreatedAt = now
	}
	if err := s.store.Recommendations.ReplaceForFarm(ctx, farmID, recs); err != nil {
		return nil, fmt.Errorf("store recommendations: %w", err)
	}
	return recs, nil
}

// ListRecommendations returns the first stored recommendations.
func (s *InsightServiceImpl) ListRecommendations(ctx context.Context, userID uuid.UUID) ([]model.Recommendation, error) {
	recs, err := s.store.Recommendations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(recs) > maxListedRecommendations {
		recs = recs[:maxListedRecommendations]
	}
	return recs, nil
}

type activity struct {
	farms     []model.Farm
	practices []model.Practice
	proofs    []model.Proof
}

func (s *InsightServiceImpl) load(ctx context.Context, userID uuid.UUID) (activity, error) {
	var (
		a   activity
		err error
	)
	if a.farms, err = s.store.Farms.ListByUser(ctx, userID); err != nil {
		return activity{}, err
	}
	if a.practices, err = s.store.Practices.ListByUser(ctx, userID); err != nil {
		return activity{}, err
	}
	if a.proofs, err = s.store.Proofs.ListByUser(ctx, userID); err != nil {
		return activity{}, err
	}
	return a, nil
}

// CarbonScore loads the user's activity and scores it.
func (s *InsightServiceImpl) CarbonScore(ctx context.Context, userID uuid.UUID) (int, error) {
	a, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return insight.CarbonScore(a.farms, a.practices, a.proofs), nil
}

// CarbonCredits loads the user's activity and estimates credits.
func (s *InsightServiceImpl) CarbonCredits(ctx context.Context, userID uuid.UUID) (float64, error) {
	a, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return insight.CarbonCredits(a.farms, a.practices), nil
}

// Dashboard runs smart alert generation before reading alerts back.
func (s *InsightServiceImpl) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	u, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.alerts.GenerateSmartAlerts(ctx, userID); err != nil {
		return nil, fmt.Errorf("smart alerts: %w", err)
	}
	a, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	credits, err := s.store.Credits.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	alerts, err := s.alerts.ListAlerts(ctx, userID)
	if err != nil {
		return nil, err
	}
	recs, err := s.ListRecommendations(ctx, userID)
	if err != nil {
		return nil, err
	}

	earnings := decimal.Zero
	for _, c := range credits {
		earnings = earnings.Add(c.Value)
	}
	verified := 0
	for _, p := range a.proofs {
		if p.Status == model.ProofVerified {
			verified++
		}
	}

	return &Dashboard{
		User:            *u,
		Score:           insight.CarbonScore(a.farms, a.practices, a.proofs),
		Credits:         insight.CarbonCredits(a.farms, a.practices),
		TotalEarnings:   earnings,
		Farms:           len(a.farms),
		Practices:       len(a.practices),
		Proofs:          len(a.proofs),
		VerifiedProofs:  verified,
		Alerts:          alerts,
		Recommendations: recs,
	}, nil
}

// CreditSummary computes the report from the user's activity.
func (s *InsightServiceImpl) CreditSummary(ctx context.Context, userID uuid.UUID) (*CreditSummary, error) {
	if _, err := s.store.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	a, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	credits := insight.CarbonCredits(a.farms, a.practices)
	trees, cars := insight.Equivalents(credits)
	return &CreditSummary{
		Credits:       credits,
		Score:         insight.CarbonScore(a.farms, a.practices, a.proofs),
		Farms:         len(a.farms),
		Breakdown:     insight.Breakdown(a.practices),
		Trees:         trees,
		Cars:          cars,
		CertificateID: CertificateID(userID, s.now()),
	}, nil
}

// CertificateID formats AGRI-<last six id characters>-<year>.
func CertificateID(userID uuid.UUID, at time.Time) string {
	id := userID.String()
	return fmt.Sprintf("AGRI-%s-%d", strings.ToUpper(id[len(id)-6:]), at.Year())
}
