package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/claimboard/internal/db"
	"github.com/yigit/claimboard/internal/pkg/logger"
)

const createTrackingTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// Migrator applies numbered SQL files once each, tracking them in schema_migrations
type Migrator struct {
	db *db.PostgresDB
}

// NewMigrator creates a new migrator
func NewMigrator(database *db.PostgresDB) *Migrator {
	return &Migrator{db: database}
}

// MigrateFromDirectory applies every pending *.sql file in dirPath in lexical order
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) error {
	files, err := PendingOrder(dirPath)
	if err != nil {
		return err
	}

	if _, err := m.db.Pool.Exec(ctx, createTrackingTable); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	for _, name := range files {
		if err := m.migrateFile(ctx, filepath.Join(dirPath, name)); err != nil {
			return err
		}
	}
	return nil
}

// migrateFile applies one file and records it in the same transaction
func (m *Migrator) migrateFile(ctx context.Context, path string) error {
	name := filepath.Base(path)
	version := VersionOf(name)

	var applied bool
	err := m.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&applied)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if applied {
		logger.Debug().Str("file", name).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	err = m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("migration %s failed: %w", name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info().Str("file", name).Msg("Migration applied")
	return nil
}

// PendingOrder lists the *.sql files in dirPath sorted by name
func PendingOrder(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// VersionOf extracts the version prefix from a migration file name ("001_init.sql" => "001")
func VersionOf(filename string) string {
	return strings.SplitN(filename, "_", 2)[0]
}
