package migration

import (
	"context"

	"resultdesk/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles the audit-log schema. The statements are kept to the
// subset of SQL shared by PostgreSQL and SQLite.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createUploadEventsTable(ctx, db); err != nil {
		return errors.DatabaseError("failed to create upload_events table", err)
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.DatabaseError("failed to create indexes", err)
	}

	return nil
}

func (r *MigrationRunner) createUploadEventsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS upload_events (
			id VARCHAR(36) PRIMARY KEY,
			class_label VARCHAR(32) NOT NULL,
			filename TEXT NOT NULL,
			record_count INTEGER NOT NULL DEFAULT 0,
			column_names TEXT NOT NULL DEFAULT '[]',
			registration_column TEXT NOT NULL DEFAULT '',
			uploaded_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_upload_events_uploaded_at ON upload_events(uploaded_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_upload_events_class ON upload_events(class_label, uploaded_at DESC)",
	}

	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
