package grpcserver

import (
	"context"

	"github.com/and161185/agrocarbon/internal/api"
	"github.com/gofrs/uuid/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "agro.userID"

// publicMethods are served without a bearer token. Review and credit
// issuance check the reviewer key instead.
var publicMethods = map[string]bool{
	api.FullMethod("RequestOTP"):   true,
	api.FullMethod("Login"):        true,
	api.FullMethod("Signup"):       true,
	api.FullMethod("Catalog"):      true,
	api.FullMethod("ReviewProof"):  true,
	api.FullMethod("RecordCredit"): true,
}

// WithUserID stores authenticated user ID in context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx fetches user ID from context.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// AuthUnary rejects AgroCarbon calls without a valid bearer token and stores
// the caller in the context. Other services, such as health, pass through.
func (s *Server) AuthUnary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if _, ok := info.Server.(api.AgroCarbonServer); !ok || publicMethods[info.FullMethod] {
			return next(ctx, req)
		}
		id, err := s.userIDFromCtx(ctx)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "no auth")
		}
		noteCaller(ctx, id)
		return next(WithUserID(ctx, id), req)
	}
}
