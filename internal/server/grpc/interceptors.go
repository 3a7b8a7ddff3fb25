package grpcserver

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/and161185/agrocarbon/internal/api"
)

// callLog is filled by inner interceptors and read back by LoggingUnary
// once the handler returns.
type callLog struct {
	userID uuid.UUID
}

type callLogKey struct{}

// noteCaller records the authenticated caller for the access log line.
func noteCaller(ctx context.Context, id uuid.UUID) {
	if cl, ok := ctx.Value(callLogKey{}).(*callLog); ok {
		cl.userID = id
	}
}

// MaskMobile keeps the last four digits of a mobile number.
func MaskMobile(m string) string {
	if len(m) <= 4 {
		return strings.Repeat("*", len(m))
	}
	return strings.Repeat("*", len(m)-4) + m[len(m)-4:]
}

// loggedMobile pulls the mobile out of the auth requests.
func loggedMobile(req any) (string, bool) {
	switch r := req.(type) {
	case *api.RequestOTPRequest:
		return r.Mobile, true
	case *api.LoginRequest:
		return r.Mobile, true
	case *api.SignupRequest:
		return r.Mobile, true
	}
	return "", false
}

func levelFor(c codes.Code) zapcore.Level {
	switch c {
	case codes.Internal, codes.Unknown, codes.DataLoss:
		return zapcore.ErrorLevel
	case codes.ResourceExhausted, codes.PermissionDenied:
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

// LoggingUnary writes one access line per call: method, status, duration,
// client address, plus the caller once authenticated. Payloads are never
// logged; auth calls get the masked mobile so lockouts can be traced.
func LoggingUnary(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		cl := &callLog{}
		resp, err := next(context.WithValue(ctx, callLogKey{}, cl), req)
		code := status.Code(err)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("dur", time.Since(start)),
			zap.String("peer", remoteIP(ctx)),
		}
		if cl.userID != uuid.Nil {
			fields = append(fields, zap.String("user_id", cl.userID.String()))
		}
		if m, ok := loggedMobile(req); ok {
			fields = append(fields, zap.String("mobile", MaskMobile(m)))
		}
		if ce := log.Check(levelFor(code), "grpc"); ce != nil {
			ce.Write(fields...)
		}
		return resp, err
	}
}

// RecoverUnary turns a handler panic into codes.Internal.
func RecoverUnary(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("method", info.FullMethod),
				)
				err = status.Error(codes.Internal, "internal")
			}
		}()
		return next(ctx, req)
	}
}
