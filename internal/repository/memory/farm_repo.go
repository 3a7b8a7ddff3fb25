package memory

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
)

func copyFarm(f *model.Farm) model.Farm {
	cpy := *f
	cpy.Boundary = append([]model.LatLng(nil), f.Boundary...)
	return cpy
}

// FarmRepo implements FarmRepository in memory.
type FarmRepo struct{ db *DB }

// NewFarmRepo constructs a farm repository.
func NewFarmRepo(db *DB) *FarmRepo { return &FarmRepo{db: db} }

// Create appends a farm.
func (r *FarmRepo) Create(_ context.Context, f *model.Farm) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cpy := copyFarm(f)
	r.db.farms = append(r.db.farms, &cpy)
	return nil
}

// GetByID returns a copy of the farm.
func (r *FarmRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Farm, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, f := range r.db.farms {
		if f.ID == id {
			cpy := copyFarm(f)
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

// ListByUser filters farms by owner.
func (r *FarmRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Farm, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []model.Farm{}
	for _, f := range r.db.farms {
		if f.UserID == userID {
			out = append(out, copyFarm(f))
		}
	}
	return out, nil
}

// PracticeRepo implements PracticeRepository in memory.
type PracticeRepo struct{ db *DB }

// NewPracticeRepo constructs a practice repository.
func NewPracticeRepo(db *DB) *PracticeRepo { return &PracticeRepo{db: db} }

// Create appends a declaration.
func (r *PracticeRepo) Create(_ context.Context, p *model.Practice) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cpy := *p
	r.db.practices = append(r.db.practices, &cpy)
	return nil
}

// ListByUser filters declarations by user.
func (r *PracticeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Practice, error) {
	return r.filter(func(p *model.Practice) bool { return p.UserID == userID }), nil
}

// ListByFarm filters declarations by farm.
func (r *PracticeRepo) ListByFarm(_ context.Context, farmID uuid.UUID) ([]model.Practice, error) {
	return r.filter(func(p *model.Practice) bool { return p.FarmID == farmID }), nil
}

func (r *PracticeRepo) filter(keep func(*model.Practice) bool) []model.Practice {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []model.Practice{}
	for _, p := range r.db.practices {
		if keep(p) {
			out = append(out, *p)
		}
	}
	return out
}

// ProofRepo implements ProofRepository in memory.
type ProofRepo struct{ db *DB }

// NewProofRepo constructs a proof repository.
func NewProofRepo(db *DB) *ProofRepo { return &ProofRepo{db: db} }

// Create appends a proof.
func (r *ProofRepo) Create(_ context.Context, p *model.Proof) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cpy := *p
	r.db.proofs = append(r.db.proofs, &cpy)
	return nil
}

// GetByID returns a copy of the proof.
func (r *ProofRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Proof, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, p := range r.db.proofs {
		if p.ID == id {
			cpy := *p
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

// ListByUser filters proofs by user.
func (r *ProofRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Proof, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []model.Proof{}
	for _, p := range r.db.proofs {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// SetStatus records a review outcome in place.
func (r *ProofRepo) SetStatus(_ context.Context, id uuid.UUID, status model.ProofStatus, reviewedAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.proofs {
		if p.ID == id {
			p.Status = status
			at := reviewedAt
			p.ReviewedAt = &at
			return nil
		}
	}
	return errs.ErrNotFound
}
