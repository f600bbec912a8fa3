// Package migrate applies the embedded goose migrations of the configured
// storage backend.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/phrazzld/taskflow-api/internal/platform/postgres"
	"github.com/phrazzld/taskflow-api/internal/platform/sqlite"
	"github.com/pressly/goose/v3"
)

// Supported storage drivers, matching config.DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Migrator runs migrations for one database handle.
type Migrator struct {
	provider *goose.Provider
	logger   *slog.Logger
}

// New creates a Migrator for db using the migrations embedded by the backend
// package that matches driver.
func New(db *sql.DB, driver string, logger *slog.Logger) (*Migrator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		dialect goose.Dialect
		source  fs.FS
	)
	switch driver {
	case DriverPostgres:
		dialect, source = goose.DialectPostgres, postgres.Migrations
	case DriverSQLite:
		dialect, source = goose.DialectSQLite3, sqlite.Migrations
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	sub, err := fs.Sub(source, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	return &Migrator{
		provider: provider,
		logger:   logger.With("component", "migrations", "driver", driver),
	}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	for _, r := range results {
		m.logResult(r)
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if len(results) == 0 {
		m.logger.Info("no pending migrations")
	}
	return nil
}

// Down rolls back the most recently applied migration.
func (m *Migrator) Down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if result != nil {
		m.logResult(result)
	}
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Status reports every known migration and whether it has been applied.
func (m *Migrator) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}
	return statuses, nil
}

// Version returns the current schema version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func (m *Migrator) logResult(r *goose.MigrationResult) {
	attrs := []any{
		"direction", r.Direction,
		"duration_ms", r.Duration.Milliseconds(),
	}
	if r.Source != nil {
		attrs = append(attrs, "version", r.Source.Version, "path", r.Source.Path)
	}

	if r.Error != nil {
		m.logger.Error("migration failed", append(attrs, "error", r.Error)...)
		return
	}
	m.logger.Info("migration applied", attrs...)
}
