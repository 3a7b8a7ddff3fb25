// Command agro-server starts the AgroCarbon gRPC server.
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/and161185/agrocarbon/internal/api"
	"github.com/and161185/agrocarbon/internal/config"
	"github.com/and161185/agrocarbon/internal/limiter"
	"github.com/and161185/agrocarbon/internal/migrate"
	"github.com/and161185/agrocarbon/internal/repository"
	"github.com/and161185/agrocarbon/internal/repository/memory"
	"github.com/and161185/agrocarbon/internal/repository/postgres"
	"github.com/and161185/agrocarbon/internal/seed"
	grpcserver "github.com/and161185/agrocarbon/internal/server/grpc"
	"github.com/and161185/agrocarbon/internal/service"
	"github.com/and161185/agrocarbon/migrations"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, prepares storage and serves gRPC until signalled.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Fatal("dotenv", zap.Error(err))
	}
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
		zap.Bool("postgres", cfg.DSN != ""),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	var (
		store repository.Store
		lim   limiter.Limiter
	)
	if cfg.DSN == "" {
		store = memory.NewStore(memory.New())
		lim = limiter.NewMemory(15*time.Minute, 5, 15*time.Minute)
	} else {
		if err := migrate.Up(ctx, cfg.DSN, migrations.FS, logger); err != nil {
			logger.Fatal("migrate up", zap.Error(err))
		}
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			logger.Fatal("pgxpool.New", zap.Error(err))
		}
		defer pool.Close()
		store = postgres.NewStore(&postgres.DB{Pool: pool})
		lim = limiter.NewPG(pool, 15*time.Minute, 5, 15*time.Minute)
	}

	// Services
	userSvc := service.NewUserService(store.Users, logger)
	alertSvc := service.NewAlertService(store, logger)
	insightSvc := service.NewInsightService(store, alertSvc, logger)
	farmSvc := service.NewFarmService(store, insightSvc, alertSvc, logger)
	ledgerSvc := service.NewLedgerService(store, logger)
	authSvc := service.NewAuthService(userSvc, store.OTPs, []byte(cfg.JWTKey), cfg.AccessTTL, cfg.OTPTTL, lim, logger)

	if cfg.Seed {
		if err := seed.Demo(ctx, store, insightSvc, alertSvc, time.Now()); err != nil {
			logger.Fatal("seed", zap.Error(err))
		}
		logger.Info("demo data ready", zap.String("mobile", seed.DemoMobile))
	}

	// gRPC server with interceptors
	app := grpcserver.New(grpcserver.Services{
		Auth:     authSvc,
		Users:    userSvc,
		Farms:    farmSvc,
		Ledger:   ledgerSvc,
		Alerts:   alertSvc,
		Insights: insightSvc,
	}, []byte(cfg.JWTKey), logger,
		grpcserver.WithReviewerKey(cfg.ReviewerKey),
		grpcserver.WithDevCodes(cfg.Dev),
	)

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			grpcserver.RecoverUnary(logger),
			grpcserver.LoggingUnary(logger),
			app.AuthUnary(),
		),
	}
	if cfg.TLSCert != "" {
		creds, err := credentials.NewServerTLSFromFile(cfg.TLSCert, cfg.TLSKey)
		if err != nil {
			logger.Fatal("failed to load TLS cert/key", zap.Error(err))
		}
		opts = append(opts, grpc.Creds(creds))
	} else {
		logger.Warn("serving without TLS")
	}
	s := grpc.NewServer(opts...)
	api.RegisterAgroCarbonServer(s, app)

	// Health & reflection (dev)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	if cfg.Dev {
		reflection.Register(s)
	}

	// Listen
	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLSCert != ""))
		errCh <- s.Serve(lis)
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		hs.Shutdown()
		done := make(chan struct{})
		go func() {
			s.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			s.Stop()
		}
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
