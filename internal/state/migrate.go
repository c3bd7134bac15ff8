package state

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// newMigrator builds a goose provider over the embedded catalog schema.
func newMigrator(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(goose.DialectSQLite3, db, fsys)
}

// Migrate brings the catalog schema up to date.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if s.db == nil {
		return ErrNotOpened
	}

	migrator, err := newMigrator(s.db)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	results, err := migrator.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, res := range results {
		s.logger.Debug("applied catalog migration", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}

// MigrationVersion returns the schema version recorded in the catalog.
func (s *SQLiteStore) MigrationVersion(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, ErrNotOpened
	}

	migrator, err := newMigrator(s.db)
	if err != nil {
		return 0, fmt.Errorf("failed to load migrations: %w", err)
	}
	return migrator.GetDBVersion(ctx)
}
