package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	pkgcrypto "github.com/and161185/agrocarbon/internal/crypto"
	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/limiter"
	"github.com/and161185/agrocarbon/internal/model"
	"github.com/and161185/agrocarbon/internal/repository"
)

// AuthService defines OTP based sign-in.
type AuthService interface {
	// RequestOTP issues a fresh code for mobile and returns it with its expiry.
	RequestOTP(ctx context.Context, mobile string) (code string, expiresAt time.Time, err error)
	// Login verifies the code and signs in an existing user.
	// errs.ErrNotFound means the code is valid but the mobile is unregistered.
	Login(ctx context.Context, mobile, otp, ip string) (model.Tokens, model.User, error)
	// Signup verifies the code and registers profile under mobile.
	Signup(ctx context.Context, mobile, otp, ip string, profile model.User) (model.Tokens, model.User, error)
}

type AuthServiceImpl struct {
	users     UserService
	otps      repository.OTPRepository
	signKey   []byte
	accessTTL time.Duration
	otpTTL    time.Duration
	lim       limiter.Limiter
	log       *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(
	users UserService, otps repository.OTPRepository, signKey []byte,
	accessTTL, otpTTL time.Duration, lim limiter.Limiter, log *zap.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		users: users, otps: otps, signKey: signKey,
		accessTTL: accessTTL, otpTTL: otpTTL, lim: lim, log: log, now: time.Now,
	}
}

// RequestOTP replaces any pending challenge for mobile.
func (s *AuthServiceImpl) RequestOTP(ctx context.Context, mobile string) (string, time.Time, error) {
	if !ValidMobile(mobile) {
		return "", time.Time{}, fmt.Errorf("%w: mobile must be 10 digits", errs.ErrInvalidArgument)
	}
	code, err := pkgcrypto.GenerateOTP()
	if err != nil {
		return "", time.Time{}, err
	}
	salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return "", time.Time{}, err
	}
	exp := s.now().Add(s.otpTTL)
	c := model.OTPChallenge{Mobile: mobile, Hash: pkgcrypto.HashOTP(code, salt), Salt: salt, ExpiresAt: exp}
	if err := s.otps.Put(ctx, c); err != nil {
		return "", time.Time{}, err
	}
	return code, exp, nil
}

// verifyOTP checks the code under the limiter without consuming it.
func (s *AuthServiceImpl) verifyOTP(ctx context.Context, mobile, code string, ipHash []byte) error {
	allowed, _, err := s.lim.Allow(ctx, mobile, ipHash)
	if err != nil {
		return err
	}
	if !allowed {
		return errs.ErrRateLimited
	}

	c, err := s.otps.Get(ctx, mobile)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	if err != nil || !s.now().Before(c.ExpiresAt) || !pkgcrypto.VerifyOTP(code, c.Salt, c.Hash) {
		if blocked, _, ferr := s.lim.Failure(ctx, mobile, ipHash); ferr == nil && blocked {
			return errs.ErrRateLimited
		}
		return errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, mobile, ipHash)
	return nil
}

// Login signs in the user owning mobile. The code stays valid when the
// mobile is unregistered so the client can continue with Signup.
func (s *AuthServiceImpl) Login(ctx context.Context, mobile, otp, ip string) (model.Tokens, model.User, error) {
	if err := s.verifyOTP(ctx, mobile, otp, limiter.HashIP(ip)); err != nil {
		return model.Tokens{}, model.User{}, err
	}
	u, err := s.users.FindUserByMobile(ctx, mobile)
	if err != nil {
		return model.Tokens{}, model.User{}, err
	}
	if err := s.otps.Delete(ctx, mobile); err != nil {
		return model.Tokens{}, model.User{}, err
	}
	tok, err := s.issueAccessToken(u.ID)
	if err != nil {
		return model.Tokens{}, model.User{}, err
	}
	s.log.Info("user logged in", zap.String("user_id", u.ID.String()))
	return tok, *u, nil
}

// Signup registers a new user after verifying the code.
func (s *AuthServiceImpl) Signup(ctx context.Context, mobile, otp, ip string, profile model.User) (model.Tokens, model.User, error) {
	if err := s.verifyOTP(ctx, mobile, otp, limiter.HashIP(ip)); err != nil {
		return model.Tokens{}, model.User{}, err
	}
	profile.Mobile = mobile
	u, err := s.users.SaveUser(ctx, profile)
	if err != nil {
		return model.Tokens{}, model.User{}, err
	}
	if err := s.otps.Delete(ctx, mobile); err != nil {
		return model.Tokens{}, model.User{}, err
	}
	tok, err := s.issueAccessToken(u.ID)
	if err != nil {
		return model.Tokens{}, model.User{}, err
	}
	return tok, *u, nil
}

// issueAccessToken creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueAccessToken(userID uuid.UUID) (model.Tokens, error) {
	now := s.now()
	exp := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: signed, ExpiresAt: exp}, nil
}
