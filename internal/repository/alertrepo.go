package repository

import (
	"context"

	"github.com/and161185/agrocarbon/internal/model"
	"github.com/gofrs/uuid/v5"
)

// AlertRepository stores user alerts.
type AlertRepository interface {
	Create(ctx context.Context, a *model.Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Alert, error)
	// ListUnreadByUser returns unread alerts, newest first.
	ListUnreadByUser(ctx context.Context, userID uuid.UUID) ([]model.Alert, error)
	// MarkRead flags one alert as read.
	MarkRead(ctx context.Context, id uuid.UUID) error
	// MarkReadByType flags every alert of the type for the user as read.
	MarkReadByType(ctx context.Context, userID uuid.UUID, typ model.AlertType) error
	// HasUnread reports whether the user has an unread alert of the type.
	HasUnread(ctx context.Context, userID uuid.UUID, typ model.AlertType) (bool, error)
}

// RecommendationRepository stores generated practice recommendations.
type RecommendationRepository interface {
	// ReplaceForFarm swaps the farm's stored recommendations for recs.
	ReplaceForFarm(ctx context.Context, farmID uuid.UUID, recs []model.Recommendation) error
	// ListByUser returns the user's recommendations in farm creation order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Recommendation, error)
}
