package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
)

// FarmRepo implements FarmRepository using PostgreSQL.
type FarmRepo struct{ db *DB }

// NewFarmRepo constructs a farm repository.
func NewFarmRepo(db *DB) *FarmRepo { return &FarmRepo{db: db} }

// point is the JSONB element of farms.boundary.
type point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func encodeBoundary(b []model.LatLng) ([]byte, error) {
	pts := make([]point, len(b))
	for i, p := range b {
		pts[i] = point{Lat: p.Lat, Lng: p.Lng}
	}
	return json.Marshal(pts)
}

func decodeBoundary(raw []byte) ([]model.LatLng, error) {
	var pts []point
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &pts); err != nil {
			return nil, fmt.Errorf("decode boundary: %w", err)
		}
	}
	out := make([]model.LatLng, len(pts))
	for i, p := range pts {
		out[i] = model.LatLng{Lat: p.Lat, Lng: p.Lng}
	}
	return out, nil
}

const farmCols = `id, user_id, area, crop_type, lat, lng, boundary, created_at`

// Create inserts a farm row.
func (r *FarmRepo) Create(ctx context.Context, f *model.Farm) error {
	boundary, err := encodeBoundary(f.Boundary)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO farms (id, user_id, area, crop_type, lat, lng, boundary, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.db.Pool.Exec(ctx, q,
		f.ID, f.UserID, f.Area, f.CropType, f.Location.Lat, f.Location.Lng, boundary, f.CreatedAt)
	return err
}

func scanFarm(row pgx.Row) (model.Farm, error) {
	var (
		f   model.Farm
		raw []byte
	)
	if err := row.Scan(&f.ID, &f.UserID, &f.Area, &f.CropType, &f.Location.Lat, &f.Location.Lng, &raw, &f.CreatedAt); err != nil {
		return model.Farm{}, err
	}
	b, err := decodeBoundary(raw)
	if err != nil {
		return model.Farm{}, err
	}
	f.Boundary = b
	return f, nil
}

// GetByID selects a farm by ID.
func (r *FarmRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Farm, error) {
	f, err := scanFarm(r.db.Pool.QueryRow(ctx, `SELECT `+farmCols+` FROM farms WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// ListByUser selects the user's farms in insertion order.
func (r *FarmRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Farm, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+farmCols+` FROM farms WHERE user_id=$1 ORDER BY seq`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Farm{}
	for rows.Next() {
		f, err := scanFarm(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// PracticeRepo implements PracticeRepository using PostgreSQL.
type PracticeRepo struct{ db *DB }

// NewPracticeRepo constructs a practice repository.
func NewPracticeRepo(db *DB) *PracticeRepo { return &PracticeRepo{db: db} }

// Create inserts a practice declaration.
func (r *PracticeRepo) Create(ctx context.Context, p *model.Practice) error {
	const q = `
INSERT INTO practices (id, user_id, farm_id, practice_id, start_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Pool.Exec(ctx, q, p.ID, p.UserID, p.FarmID, p.PracticeID, p.StartDate, p.CreatedAt)
	return err
}

// ListByUser selects the user's declarations in insertion order.
func (r *PracticeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Practice, error) {
	return r.list(ctx, `user_id`, userID)
}

// ListByFarm selects the farm's declarations in insertion order.
func (r *PracticeRepo) ListByFarm(ctx context.Context, farmID uuid.UUID) ([]model.Practice, error) {
	return r.list(ctx, `farm_id`, farmID)
}

func (r *PracticeRepo) list(ctx context.Context, col string, id uuid.UUID) ([]model.Practice, error) {
	q := `SELECT id, user_id, farm_id, practice_id, start_date, created_at FROM practices WHERE ` + col + `=$1 ORDER BY seq`
	rows, err := r.db.Pool.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Practice{}
	for rows.Next() {
		var p model.Practice
		if err := rows.Scan(&p.ID, &p.UserID, &p.FarmID, &p.PracticeID, &p.StartDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ProofRepo implements ProofRepository using PostgreSQL.
type ProofRepo struct{ db *DB }

// NewProofRepo constructs a proof repository.
func NewProofRepo(db *DB) *ProofRepo { return &ProofRepo{db: db} }

const proofCols = `id, user_id, farm_id, practice_id, type, description, file_name, file_size, ts, status, reviewed_at`

// Create inserts a proof row.
func (r *ProofRepo) Create(ctx context.Context, p *model.Proof) error {
	const q = `
INSERT INTO proofs (id, user_id, farm_id, practice_id, type, description, file_name, file_size, ts, status, reviewed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Pool.Exec(ctx, q,
		p.ID, p.UserID, p.FarmID, p.PracticeID, string(p.Type), p.Description, p.FileName, p.FileSize,
		p.Timestamp, string(p.Status), p.ReviewedAt)
	return err
}

func scanProof(row pgx.Row) (model.Proof, error) {
	var (
		p           model.Proof
		typ, status string
	)
	err := row.Scan(&p.ID, &p.UserID, &p.FarmID, &p.PracticeID, &typ, &p.Description, &p.FileName, &p.FileSize,
		&p.Timestamp, &status, &p.ReviewedAt)
	p.Type, p.Status = model.ProofType(typ), model.ProofStatus(status)
	return p, err
}

// GetByID selects a proof by ID.
func (r *ProofRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Proof, error) {
	p, err := scanProof(r.db.Pool.QueryRow(ctx, `SELECT `+proofCols+` FROM proofs WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByUser selects the user's proofs in submission order.
func (r *ProofRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Proof, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+proofCols+` FROM proofs WHERE user_id=$1 ORDER BY seq`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Proof{}
	for rows.Next() {
		p, err := scanProof(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetStatus stores a review outcome.
func (r *ProofRepo) SetStatus(ctx context.Context, id uuid.UUID, status model.ProofStatus, reviewedAt time.Time) error {
	const q = `UPDATE proofs SET status=$2, reviewed_at=$3 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, string(status), reviewedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
