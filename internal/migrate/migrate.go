// Package migrate brings the PostgreSQL schema up to date on startup.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Up applies every pending migration found at the root of fsys and logs
// each applied file and the resulting schema version.
func Up(ctx context.Context, dsn string, fsys fs.FS, log *zap.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	results, err := p.Up(ctx)
	logApplied(log, results)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	version, err := p.GetDBVersion(ctx)
	if err != nil {
		return err
	}
	log.Info("schema ready", zap.Int64("version", version), zap.Int("applied", len(results)))
	return nil
}

func logApplied(log *zap.Logger, results []*goose.MigrationResult) {
	for _, r := range results {
		if r == nil || r.Source == nil {
			continue
		}
		fields := []zap.Field{
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.Duration("dur", r.Duration),
		}
		if r.Error != nil {
			log.Error("migration failed", append(fields, zap.Error(r.Error))...)
			continue
		}
		log.Info("migration applied", fields...)
	}
}
