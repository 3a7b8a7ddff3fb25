package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/insight"
	"github.com/and161185/agrocarbon/internal/model"
	"github.com/and161185/agrocarbon/internal/repository"
)

// AlertService manages per-user reminders.
type AlertService interface {
	// CreateAlert stores a new unread alert.
	CreateAlert(ctx context.Context, userID uuid.UUID, d model.AlertDraft) (*model.Alert, error)
	// ListAlerts returns unread alerts, newest first.
	ListAlerts(ctx context.Context, userID uuid.UUID) ([]model.Alert, error)
	// MarkAlertRead marks one of the user's alerts read.
	MarkAlertRead(ctx context.Context, userID, alertID uuid.UUID) error
	// ClearAlertsByType marks every alert of typ read.
	ClearAlertsByType(ctx context.Context, userID uuid.UUID, typ model.AlertType) error
	// GenerateSmartAlerts evaluates the reminder rules and stores new alerts.
	GenerateSmartAlerts(ctx context.Context, userID uuid.UUID) ([]model.Alert, error)
}

type AlertServiceImpl struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewAlertService constructs AlertService.
func NewAlertService(store repository.Store, log *zap.Logger) *AlertServiceImpl {
	return &AlertServiceImpl{store: store, log: log, now: time.Now}
}

// CreateAlert stamps ID, owner and time on the draft.
func (s *AlertServiceImpl) CreateAlert(ctx context.Context, userID uuid.UUID, d model.AlertDraft) (*model.Alert, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	a := &model.Alert{
		ID:        id,
		UserID:    userID,
		Type:      d.Type,
		Title:     d.Title,
		Message:   d.Message,
		Icon:      d.Icon,
		Action:    d.Action,
		CreatedAt: s.now(),
	}
	if err := s.store.Alerts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAlerts returns the user's unread alerts.
func (s *AlertServiceImpl) ListAlerts(ctx context.Context, userID uuid.UUID) ([]model.Alert, error) {
	return s.store.Alerts.ListUnreadByUser(ctx, userID)
}

// MarkAlertRead hides alerts of other users behind errs.ErrNotFound.
func (s *AlertServiceImpl) MarkAlertRead(ctx context.Context, userID, alertID uuid.UUID) error {
	a, err := s.store.Alerts.GetByID(ctx, alertID)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		return errs.ErrNotFound
	}
	return s.store.Alerts.MarkRead(ctx, alertID)
}

// ClearAlertsByType marks matching alerts read.
func (s *AlertServiceImpl) ClearAlertsByType(ctx context.Context, userID uuid.UUID, typ model.AlertType) error {
	return s.store.Alerts.MarkReadByType(ctx, userID, typ)
}

// GenerateSmartAlerts skips a type while an unread alert of it is outstanding,
// so repeated evaluation does not pile up duplicates.
func (s *AlertServiceImpl) GenerateSmartAlerts(ctx context.Context, userID uuid.UUID) ([]model.Alert, error) {
	farms, err := s.store.Farms.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	practices, err := s.store.Practices.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	proofs, err := s.store.Proofs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	created := []model.Alert{}
	for _, d := range insight.SmartAlerts(farms, practices, proofs, s.now()) {
		exists, err := s.store.Alerts.HasUnread(ctx, userID, d.Type)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		a, err := s.CreateAlert(ctx, userID, d)
		if err != nil {
			return nil, err
		}
		created = append(created, *a)
	}
	if len(created) > 0 {
		s.log.Debug("smart alerts created", zap.String("user_id", userID.String()), zap.Int("count", len(created)))
	}
	return created, nil
}
