package grpcserver

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/and161185/agrocarbon/internal/api"
)

func TestWithUserID_And_UserIDFromCtx(t *testing.T) {
	t.Parallel()

	if id, ok := UserIDFromCtx(context.Background()); ok || id != uuid.Nil {
		t.Fatalf("expected no user id in empty ctx")
	}

	want := uuid.Must(uuid.NewV4())
	ctx := WithUserID(context.Background(), want)

	got, ok := UserIDFromCtx(ctx)
	if !ok {
		t.Fatalf("expected user id in ctx")
	}
	if got != want {
		t.Fatalf("mismatch: got %s, want %s", got, want)
	}

	type ctxKey string
	const userIDKey ctxKey = "agro.userID"
	bad := context.WithValue(context.Background(), userIDKey, "not-uuid")
	if id, ok := UserIDFromCtx(bad); ok || id != uuid.Nil {
		t.Fatalf("expected miss on wrong typed value")
	}
}

func TestAuthUnary(t *testing.T) {
	t.Parallel()

	s := &Server{signKey: []byte("secret")}
	ic := s.AuthUnary()

	var seen uuid.UUID
	h := func(ctx context.Context, req any) (any, error) {
		seen, _ = UserIDFromCtx(ctx)
		return "ok", nil
	}

	protected := &grpc.UnaryServerInfo{Server: s, FullMethod: api.FullMethod("Dashboard")}
	_, err := ic(context.Background(), nil, protected, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("want Unauthenticated, got %v", err)
	}

	sub := uuid.Must(uuid.NewV4())
	j := makeJWT(t, sub.String(), s.signKey, jwt.SigningMethodHS256, time.Now().UTC(), time.Hour)
	if _, err := ic(ctxWithAuth(j), nil, protected, h); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if seen != sub {
		t.Fatalf("caller not stored: got %s want %s", seen, sub)
	}

	public := &grpc.UnaryServerInfo{Server: s, FullMethod: api.FullMethod("RequestOTP")}
	if _, err := ic(context.Background(), nil, public, h); err != nil {
		t.Fatalf("public method rejected: %v", err)
	}

	// other services, e.g. health, are not guarded
	other := &grpc.UnaryServerInfo{Server: struct{}{}, FullMethod: "/grpc.health.v1.Health/Check"}
	if _, err := ic(context.Background(), nil, other, h); err != nil {
		t.Fatalf("foreign service rejected: %v", err)
	}
}
