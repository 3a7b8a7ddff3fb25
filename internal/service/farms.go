package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/geo"
	"github.com/and161185/agrocarbon/internal/model"
	"github.com/and161185/agrocarbon/internal/repository"
)

// FarmInput describes a newly mapped farm.
type FarmInput struct {
	Area     float64 // acres; <= 0 derives it from Boundary
	CropType string
	Location model.LatLng
	Boundary []model.LatLng
}

// PracticeInput declares a practice on a farm.
type PracticeInput struct {
	FarmID     uuid.UUID
	PracticeID string
	StartDate  time.Time // zero means now
}

// ProofInput describes submitted evidence. File bytes are not stored.
type ProofInput struct {
	FarmID      uuid.UUID
	PracticeID  string
	Type        model.ProofType
	Description string
	FileName    string
	FileSize    int64
}

// FarmService manages farms and the activity recorded against them.
type FarmService interface {
	// SaveFarm stores a farm, onboards its owner and refreshes recommendations.
	SaveFarm(ctx context.Context, userID uuid.UUID, in FarmInput) (*model.Farm, error)
	ListFarms(ctx context.Context, userID uuid.UUID) ([]model.Farm, error)
	// DeclarePractice records a practice adoption on one of the user's farms.
	DeclarePractice(ctx context.Context, userID uuid.UUID, in PracticeInput) (*model.Practice, error)
	ListPractices(ctx context.Context, userID uuid.UUID) ([]model.Practice, error)
	// SubmitProof stores pending evidence and clears proof reminders.
	SubmitProof(ctx context.Context, userID uuid.UUID, in ProofInput) (*model.Proof, error)
	ListProofs(ctx context.Context, userID uuid.UUID) ([]model.Proof, error)
	// ReviewProof records a verifier decision on a pending proof.
	ReviewProof(ctx context.Context, proofID uuid.UUID, status model.ProofStatus) (*model.Proof, error)
}

type FarmServiceImpl struct {
	store   repository.Store
	insight InsightService
	alerts  AlertService
	log     *zap.Logger
	now     func() time.Time
}

// NewFarmService constructs FarmService.
func NewFarmService(store repository.Store, insight InsightService, alerts AlertService, log *zap.Logger) *FarmServiceImpl {
	return &FarmServiceImpl{store: store, insight: insight, alerts: alerts, log: log, now: time.Now}
}

// SaveFarm validates input; the farm is kept even if the follow-up steps fail.
func (s *FarmServiceImpl) SaveFarm(ctx context.Context, userID uuid.UUID, in FarmInput) (*model.Farm, error) {
	if in.CropType == "" {
		return nil, fmt.Errorf("%w: empty crop type", errs.ErrInvalidArgument)
	}
	area := in.Area
	if area <= 0 {
		area = geo.AreaAcres(in.Boundary)
	}
	if area <= 0 {
		return nil, fmt.Errorf("%w: farm area must be positive", errs.ErrInvalidArgument)
	}
	u, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	f := &model.Farm{
		ID:        id,
		UserID:    userID,
		Area:      area,
		CropType:  in.CropType,
		Location:  in.Location,
		Boundary:  append([]model.LatLng(nil), in.Boundary...),
		CreatedAt: s.now(),
	}
	if err := s.store.Farms.Create(ctx, f); err != nil {
		return nil, err
	}
	s.log.Info("farm saved", zap.String("user_id", userID.String()), zap.String("farm_id", id.String()), zap.Float64("acres", area))

	if !u.IsOnboarded {
		u.IsOnboarded = true
		if err := s.store.Users.Update(ctx, u); err != nil {
			return f, fmt.Errorf("onboard user: %w", err)
		}
	}
	if _, err := s.insight.GenerateRecommendations(ctx, id); err != nil {
		return f, fmt.Errorf("recommendations: %w", err)
	}
	return f, nil
}

// ListFarms returns the user's farms in creation order.
func (s *FarmServiceImpl) ListFarms(ctx context.Context, userID uuid.UUID) ([]model.Farm, error) {
	return s.store.Farms.ListByUser(ctx, userID)
}

// ownFarm hides other users' farms behind errs.ErrNotFound.
func (s *FarmServiceImpl) ownFarm(ctx context.Context, userID, farmID uuid.UUID) (*model.Farm, error) {
	f, err := s.store.Farms.GetByID(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if f.UserID != userID {
		return nil, errs.ErrNotFound
	}
	return f, nil
}

// DeclarePractice accepts only catalog practices.
func (s *FarmServiceImpl) DeclarePractice(ctx context.Context, userID uuid.UUID, in PracticeInput) (*model.Practice, error) {
	if _, ok := model.PracticeByID(in.PracticeID); !ok {
		return nil, fmt.Errorf("%w: unknown practice %q", errs.ErrInvalidArgument, in.PracticeID)
	}
	if _, err := s.ownFarm(ctx, userID, in.FarmID); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := s.now()
	start := in.StartDate
	if start.IsZero() {
		start = now
	}
	p := &model.Practice{ID: id, UserID: userID, FarmID: in.FarmID, PracticeID: in.PracticeID, StartDate: start, CreatedAt: now}
	if err := s.store.Practices.Create(ctx, p); err != nil {
		return nil, err
	}
	if _, err := s.insight.GenerateRecommendations(ctx, in.FarmID); err != nil {
		return p, fmt.Errorf("recommendations: %w", err)
	}
	return p, nil
}

// ListPractices returns the user's declarations in creation order.
func (s *FarmServiceImpl) ListPractices(ctx context.Context, userID uuid.UUID) ([]model.Practice, error) {
	return s.store.Practices.ListByUser(ctx, userID)
}

// SubmitProof validates the type and farm ownership.
func (s *FarmServiceImpl) SubmitProof(ctx context.Context, userID uuid.UUID, in ProofInput) (*model.Proof, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: proof type %q", errs.ErrInvalidArgument, in.Type)
	}
	if in.FileSize < 0 {
		return nil, fmt.Errorf("%w: negative file size", errs.ErrInvalidArgument)
	}
	if in.PracticeID != "" {
		if _, ok := model.PracticeByID(in.PracticeID); !ok {
			return nil, fmt.Errorf("%w: unknown practice %q", errs.ErrInvalidArgument, in.PracticeID)
		}
	}
	if _, err := s.ownFarm(ctx, userID, in.FarmID); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &model.Proof{
		ID:          id,
		UserID:      userID,
		FarmID:      in.FarmID,
		PracticeID:  in.PracticeID,
		Type:        in.Type,
		Description: in.Description,
		FileName:    in.FileName,
		FileSize:    in.FileSize,
		Timestamp:   s.now(),
		Status:      model.ProofPending,
	}
	if err := s.store.Proofs.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.alerts.ClearAlertsByType(ctx, userID, model.AlertProofUpload); err != nil {
		return p, fmt.Errorf("clear reminders: %w", err)
	}
	return p, nil
}

// ListProofs returns the user's proofs in submission order.
func (s *FarmServiceImpl) ListProofs(ctx context.Context, userID uuid.UUID) ([]model.Proof, error) {
	return s.store.Proofs.ListByUser(ctx, userID)
}

// ReviewProof moves a pending proof to verified or rejected.
func (s *FarmServiceImpl) ReviewProof(ctx context.Context, proofID uuid.UUID, status model.ProofStatus) (*model.Proof, error) {
	p, err := s.store.Proofs.GetByID(ctx, proofID)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, p.Status, status)
	}
	at := s.now()
	if err := s.store.Proofs.SetStatus(ctx, proofID, status, at); err != nil {
		return nil, err
	}
	p.Status, p.ReviewedAt = status, &at
	s.log.Info("proof reviewed", zap.String("proof_id", proofID.String()), zap.String("status", string(status)))
	return p, nil
}
