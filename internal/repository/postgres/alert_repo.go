package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
)

// AlertRepo implements AlertRepository using PostgreSQL.
type AlertRepo struct{ db *DB }

// NewAlertRepo constructs an alert repository.
func NewAlertRepo(db *DB) *AlertRepo { return &AlertRepo{db: db} }

const alertCols = `id, user_id, type, title_en, title_hi, title_mr, message_en, message_hi, message_mr, icon, action, is_read, created_at`

// Create inserts an alert.
func (r *AlertRepo) Create(ctx context.Context, a *model.Alert) error {
	const q = `
INSERT INTO alerts (id, user_id, type, title_en, title_hi, title_mr, message_en, message_hi, message_mr, icon, action, is_read, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Pool.Exec(ctx, q, a.ID, a.UserID, string(a.Type),
		a.Title.En, a.Title.Hi, a.Title.Mr, a.Message.En, a.Message.Hi, a.Message.Mr,
		a.Icon, a.Action, a.IsRead, a.CreatedAt)
	return err
}

func scanAlert(row pgx.Row) (model.Alert, error) {
	var (
		a   model.Alert
		typ string
	)
	err := row.Scan(&a.ID, &a.UserID, &typ,
		&a.Title.En, &a.Title.Hi, &a.Title.Mr, &a.Message.En, &a.Message.Hi, &a.Message.Mr,
		&a.Icon, &a.Action, &a.IsRead, &a.CreatedAt)
	a.Type = model.AlertType(typ)
	return a, err
}

// GetByID selects an alert by ID.
func (r *AlertRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	a, err := scanAlert(r.db.Pool.QueryRow(ctx, `SELECT `+alertCols+` FROM alerts WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListUnreadByUser selects unread alerts, newest first.
func (r *AlertRepo) ListUnreadByUser(ctx context.Context, userID uuid.UUID) ([]model.Alert, error) {
	q := `SELECT ` + alertCols + ` FROM alerts WHERE user_id=$1 AND NOT is_read ORDER BY created_at DESC, seq`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// MarkRead sets is_read on one alert.
func (r *AlertRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE alerts SET is_read=true WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// MarkReadByType sets is_read on every unread alert of the type.
func (r *AlertRepo) MarkReadByType(ctx context.Context, userID uuid.UUID, typ model.AlertType) error {
	const q = `UPDATE alerts SET is_read=true WHERE user_id=$1 AND type=$2 AND NOT is_read`
	_, err := r.db.Pool.Exec(ctx, q, userID, string(typ))
	return err
}

// HasUnread checks for an unread alert of the type.
func (r *AlertRepo) HasUnread(ctx context.Context, userID uuid.UUID, typ model.AlertType) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM alerts WHERE user_id=$1 AND type=$2 AND NOT is_read)`
	var ok bool
	err := r.db.Pool.QueryRow(ctx, q, userID, string(typ)).Scan(&ok)
	return ok, err
}

// RecommendationRepo implements RecommendationRepository using PostgreSQL.
type RecommendationRepo struct{ db *DB }

// NewRecommendationRepo constructs a recommendation repository.
func NewRecommendationRepo(db *DB) *RecommendationRepo { return &RecommendationRepo{db: db} }

// ReplaceForFarm deletes the farm's recommendations and inserts recs in one transaction.
func (r *RecommendationRepo) ReplaceForFarm(ctx context.Context, farmID uuid.UUID, recs []model.Recommendation) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const del = `DELETE FROM recommendations WHERE farm_id=$1`
	const ins = `
INSERT INTO recommendations (id, user_id, farm_id, practice_id, title_en, title_hi, title_mr, icon, potential_income, potential_credits, priority, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if _, err = tx.Exec(ctx, del, farmID); err != nil {
		return err
	}
	for _, rec := range recs {
		if _, err = tx.Exec(ctx, ins, rec.ID, rec.UserID, farmID, rec.PracticeID,
			rec.Title.En, rec.Title.Hi, rec.Title.Mr, rec.Icon,
			rec.PotentialIncome, rec.PotentialCredits, string(rec.Priority), rec.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

// ListByUser selects the user's recommendations grouped by farm in farm creation order.
func (r *RecommendationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Recommendation, error) {
	const q = `
SELECT r.id, r.user_id, r.farm_id, r.practice_id, r.title_en, r.title_hi, r.title_mr, r.icon,
       r.potential_income, r.potential_credits, r.priority, r.created_at
FROM recommendations r JOIN farms f ON f.id = r.farm_id
WHERE r.user_id=$1
ORDER BY f.seq, r.seq`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Recommendation{}
	for rows.Next() {
		var (
			rec      model.Recommendation
			priority string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.FarmID, &rec.PracticeID,
			&rec.Title.En, &rec.Title.Hi, &rec.Title.Mr, &rec.Icon,
			&rec.PotentialIncome, &rec.PotentialCredits, &priority, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Priority = model.Priority(priority)
		out = append(out, rec)
	}
	return out, rows.Err()
}
