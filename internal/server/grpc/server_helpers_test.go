package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/and161185/agrocarbon/internal/api"
	"github.com/and161185/agrocarbon/internal/errs"
)

func makeJWT(t *testing.T, sub string, key []byte, method jwt.SigningMethod, iat time.Time, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(iat),
		NotBefore: jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(iat.Add(ttl)),
	}
	token := jwt.NewWithClaims(method, claims)
	s, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return s
}

func ctxWithAuth(token string) context.Context {
	md := metadata.New(map[string]string{
		"authorization": "Bearer " + token,
	})
	return metadata.NewIncomingContext(context.Background(), md)
}

func Test_bearerTokenFromMD_OkAndErrors(t *testing.T) {
	t.Parallel()

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer abc.def.ghi"))
	got, err := bearerTokenFromMD(ctx)
	if err != nil || got != "abc.def.ghi" {
		t.Fatalf("ok: got=%q err=%v", got, err)
	}

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Basic foo"))
	if _, err := bearerTokenFromMD(ctx); err == nil {
		t.Fatalf("want error on non-bearer")
	}

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer   "))
	if _, err := bearerTokenFromMD(ctx); err == nil {
		t.Fatalf("want error on empty token")
	}

	if _, err := bearerTokenFromMD(context.Background()); err == nil {
		t.Fatalf("want error on no metadata")
	}
}

func Test_userIDFromCtx_Valid(t *testing.T) {
	t.Parallel()

	s := &Server{signKey: []byte("secret")}
	sub := uuid.Must(uuid.NewV4()).String()
	j := makeJWT(t, sub, s.signKey, jwt.SigningMethodHS256, time.Now().UTC().Add(-time.Minute), 10*time.Minute)
	ctx := ctxWithAuth(j)

	id, err := s.userIDFromCtx(ctx)
	if err != nil {
		t.Fatalf("userIDFromCtx: %v", err)
	}
	if id.String() != sub {
		t.Fatalf("uuid mismatch: %s vs %s", id, sub)
	}
}

func Test_userIDFromCtx_NoMetadata(t *testing.T) {
	t.Parallel()

	s := &Server{signKey: []byte("secret")}
	if _, err := s.userIDFromCtx(context.Background()); err == nil {
		t.Fatalf("want error on missing metadata")
	}
}

func Test_userIDFromCtx_Expired(t *testing.T) {
	t.Parallel()

	s := &Server{signKey: []byte("secret")}
	sub := uuid.Must(uuid.NewV4()).String()

	j := makeJWT(t, sub, s.signKey, jwt.SigningMethodHS256, time.Now().UTC().Add(-2*time.Hour), -time.Hour)
	ctx := ctxWithAuth(j)

	if _, err := s.userIDFromCtx(ctx); err == nil {
		t.Fatalf("want error on expired token")
	}
}

func Test_userIDFromCtx_BadSubject(t *testing.T) {
	t.Parallel()

	s := &Server{signKey: []byte("secret")}
	j := makeJWT(t, "not-a-uuid", s.signKey, jwt.SigningMethodHS256, time.Now().UTC(), time.Hour)
	ctx := ctxWithAuth(j)

	if _, err := s.userIDFromCtx(ctx); err == nil {
		t.Fatalf("want error on bad subject")
	}
}

func Test_userIDFromCtx_WrongAlg(t *testing.T) {
	t.Parallel()

	s := &Server{signKey: []byte("secret")}
	sub := uuid.Must(uuid.NewV4()).String()

	j := makeJWT(t, sub, s.signKey, jwt.SigningMethodHS384, time.Now().UTC(), time.Hour)
	ctx := ctxWithAuth(j)

	if _, err := s.userIDFromCtx(ctx); err == nil {
		t.Fatalf("want error on wrong alg")
	}
}

func Test_userIDFromCtx_InvalidTokenString(t *testing.T) {
	t.Parallel()

	s := &Server{signKey: []byte("secret")}
	ctx := ctxWithAuth("this-is-not-a-jwt")

	if _, err := s.userIDFromCtx(ctx); err == nil {
		t.Fatalf("want error on invalid token string")
	}
}

func Test_toStatus_Mapping(t *testing.T) {
	t.Parallel()

	s := &Server{log: zaptest.NewLogger(t)}
	cases := []struct {
		err  error
		want codes.Code
	}{
		{errs.ErrNotFound, codes.NotFound},
		{fmt.Errorf("%w: empty name", errs.ErrInvalidArgument), codes.InvalidArgument},
		{errs.ErrAlreadyExists, codes.AlreadyExists},
		{errs.ErrUnauthorized, codes.Unauthenticated},
		{errs.ErrRateLimited, codes.ResourceExhausted},
		{fmt.Errorf("%w: verified -> pending", errs.ErrInvalidTransition), codes.FailedPrecondition},
		{errors.New("db down"), codes.Internal},
	}
	for _, c := range cases {
		if got := status.Code(s.toStatus("op", c.err)); got != c.want {
			t.Fatalf("%v: got %s want %s", c.err, got, c.want)
		}
	}
}

func Test_isReviewer(t *testing.T) {
	t.Parallel()

	s := &Server{reviewerKey: "k"}
	ok := metadata.NewIncomingContext(context.Background(), metadata.Pairs(api.ReviewerKeyHeader, "k"))
	bad := metadata.NewIncomingContext(context.Background(), metadata.Pairs(api.ReviewerKeyHeader, "x"))
	if !s.isReviewer(ok) {
		t.Fatalf("want reviewer")
	}
	if s.isReviewer(bad) || s.isReviewer(context.Background()) {
		t.Fatalf("want non-reviewer")
	}
}

type namedAddr string

func (a namedAddr) Network() string { return "bufconn" }
func (a namedAddr) String() string  { return string(a) }

func Test_remoteIP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		addr net.Addr
		want string
	}{
		{&net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 40001}, "10.0.0.1"},
		{&net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 40002}, "10.0.0.1"},
		{&net.TCPAddr{IP: net.ParseIP("2001:db8::1"), Port: 443}, "2001:db8::1"},
		{namedAddr("bufconn"), "bufconn"},
	}
	for _, c := range cases {
		ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: c.addr})
		if got := remoteIP(ctx); got != c.want {
			t.Fatalf("%s: got %q want %q", c.addr, got, c.want)
		}
	}
	if got := remoteIP(context.Background()); got != "" {
		t.Fatalf("no peer: got %q", got)
	}
}
