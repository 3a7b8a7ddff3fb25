package migrate

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/and161185/agrocarbon/migrations"
)

func TestLogApplied(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logApplied(zap.New(core), []*goose.MigrationResult{
		{Source: &goose.Source{Path: "00001_init.sql", Version: 1}, Duration: time.Millisecond},
		nil,
		{Source: &goose.Source{Path: "00002_bad.sql", Version: 2}, Error: errors.New("syntax")},
	})

	require.Equal(t, 1, logs.FilterMessage("migration applied").Len())
	applied := logs.FilterMessage("migration applied").All()[0].ContextMap()
	require.Equal(t, int64(1), applied["version"])
	require.Equal(t, "00001_init.sql", applied["file"])

	failed := logs.FilterMessage("migration failed").All()
	require.Len(t, failed, 1)
	require.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	require.Equal(t, "syntax", failed[0].ContextMap()["error"])
}

func TestEmbeddedMigrationsAtRoot(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.Contains(t, files, "00001_init.sql")

	body, err := fs.ReadFile(migrations.FS, "00001_init.sql")
	require.NoError(t, err)
	require.Contains(t, string(body), "-- +goose Up")
	require.Contains(t, string(body), "otp_limiter")
}
