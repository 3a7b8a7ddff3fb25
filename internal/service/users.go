// Package service contains the application services of the platform.
// Services own validation, ID and timestamp stamping, and cross-entity side effects.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
	"github.com/and161185/agrocarbon/internal/repository"
)

// UserService manages farmer profiles.
type UserService interface {
	// SaveUser registers a new farmer; a taken mobile yields errs.ErrAlreadyExists.
	SaveUser(ctx context.Context, u model.User) (*model.User, error)
	// UpdateUser merges patch into the stored profile.
	UpdateUser(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error)
	// FindUserByMobile returns the farmer registered with mobile.
	FindUserByMobile(ctx context.Context, mobile string) (*model.User, error)
	// GetUser returns the farmer by ID.
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type UserServiceImpl struct {
	users repository.UserRepository
	log   *zap.Logger
	now   func() time.Time
}

// NewUserService constructs UserService.
func NewUserService(users repository.UserRepository, log *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{users: users, log: log, now: time.Now}
}

// ValidMobile reports whether mobile is exactly ten ASCII digits.
func ValidMobile(mobile string) bool {
	if len(mobile) != 10 {
		return false
	}
	for i := 0; i < len(mobile); i++ {
		if mobile[i] < '0' || mobile[i] > '9' {
			return false
		}
	}
	return true
}

func validLanguage(l model.Language) bool {
	switch l {
	case model.LangEnglish, model.LangHindi, model.LangMarathi:
		return true
	}
	return false
}

// SaveUser stamps ID and CreatedAt and stores a not yet onboarded user.
func (s *UserServiceImpl) SaveUser(ctx context.Context, u model.User) (*model.User, error) {
	if !ValidMobile(u.Mobile) {
		return nil, fmt.Errorf("%w: mobile must be 10 digits", errs.ErrInvalidArgument)
	}
	if u.Name == "" {
		return nil, fmt.Errorf("%w: empty name", errs.ErrInvalidArgument)
	}
	if u.Language == "" {
		u.Language = model.DefaultLanguage
	}
	if !validLanguage(u.Language) {
		return nil, fmt.Errorf("%w: language %q", errs.ErrInvalidArgument, u.Language)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	u.ID = id
	u.CreatedAt = s.now()
	u.IsOnboarded = false
	if err := s.users.Create(ctx, &u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID.String()))
	return &u, nil
}

// UpdateUser loads, patches and stores the profile.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	if patch.Language != nil && !validLanguage(*patch.Language) {
		return nil, fmt.Errorf("%w: language %q", errs.ErrInvalidArgument, *patch.Language)
	}
	if patch.Name != nil && *patch.Name == "" {
		return nil, fmt.Errorf("%w: empty name", errs.ErrInvalidArgument)
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(u)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// FindUserByMobile looks the user up by mobile number.
func (s *UserServiceImpl) FindUserByMobile(ctx context.Context, mobile string) (*model.User, error) {
	return s.users.GetByMobile(ctx, mobile)
}

// GetUser looks the user up by ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
