package memory

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
)

// AlertRepo implements AlertRepository in memory.
type AlertRepo struct{ db *DB }

// NewAlertRepo constructs an alert repository.
func NewAlertRepo(db *DB) *AlertRepo { return &AlertRepo{db: db} }

// Create appends an alert.
func (r *AlertRepo) Create(_ context.Context, a *model.Alert) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cpy := *a
	r.db.alerts = append(r.db.alerts, &cpy)
	return nil
}

// GetByID returns a copy of the alert.
func (r *AlertRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Alert, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, a := range r.db.alerts {
		if a.ID == id {
			cpy := *a
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

// ListUnreadByUser returns unread alerts sorted newest first.
func (r *AlertRepo) ListUnreadByUser(_ context.Context, userID uuid.UUID) ([]model.Alert, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []model.Alert{}
	for _, a := range r.db.alerts {
		if a.UserID == userID && !a.IsRead {
			out = append(out, *a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MarkRead flips the read flag in place.
func (r *AlertRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.alerts {
		if a.ID == id {
			a.IsRead = true
			return nil
		}
	}
	return errs.ErrNotFound
}

// MarkReadByType marks every matching alert as read.
func (r *AlertRepo) MarkReadByType(_ context.Context, userID uuid.UUID, typ model.AlertType) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.alerts {
		if a.UserID == userID && a.Type == typ {
			a.IsRead = true
		}
	}
	return nil
}

// HasUnread reports whether an unread alert of the type exists.
func (r *AlertRepo) HasUnread(_ context.Context, userID uuid.UUID, typ model.AlertType) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, a := range r.db.alerts {
		if a.UserID == userID && a.Type == typ && !a.IsRead {
			return true, nil
		}
	}
	return false, nil
}

// RecommendationRepo implements RecommendationRepository in memory.
type RecommendationRepo struct{ db *DB }

// NewRecommendationRepo constructs a recommendation repository.
func NewRecommendationRepo(db *DB) *RecommendationRepo { return &RecommendationRepo{db: db} }

// ReplaceForFarm swaps the farm's recommendations, keeping the farm's position.
func (r *RecommendationRepo) ReplaceForFarm(_ context.Context, farmID uuid.UUID, recs []model.Recommendation) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, seen := r.db.recsByFarm[farmID]; !seen {
		r.db.recFarms = append(r.db.recFarms, farmID)
	}
	r.db.recsByFarm[farmID] = append([]model.Recommendation{}, recs...)
	return nil
}

// ListByUser concatenates the user's recommendations farm by farm.
func (r *RecommendationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Recommendation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []model.Recommendation{}
	for _, farmID := range r.db.recFarms {
		for _, rec := range r.db.recsByFarm[farmID] {
			if rec.UserID == userID {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}
