package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resultdesk/domain/core"
	"resultdesk/domain/result"
	"resultdesk/ports"

	"github.com/jmoiron/sqlx"
)

const defaultListLimit = 20

// UploadLogRepositoryImpl implements UploadLogRepository on PostgreSQL or SQLite
type UploadLogRepositoryImpl struct {
	db *sqlx.DB
}

// NewUploadLogRepository creates a new upload audit repository
func NewUploadLogRepository(db *sqlx.DB) ports.UploadLogRepository {
	return &UploadLogRepositoryImpl{db: db}
}

type uploadEventRow struct {
	ID                 string    `db:"id"`
	ClassLabel         string    `db:"class_label"`
	Filename           string    `db:"filename"`
	RecordCount        int       `db:"record_count"`
	Columns            string    `db:"column_names"`
	RegistrationColumn string    `db:"registration_column"`
	UploadedAt         time.Time `db:"uploaded_at"`
}

// Record appends one upload event
func (r *UploadLogRepositoryImpl) Record(ctx context.Context, event result.UploadEvent) error {
	columns := event.Columns
	if columns == nil {
		columns = []string{}
	}
	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	query := r.db.Rebind(`
		INSERT INTO upload_events (id, class_label, filename, record_count, column_names, registration_column, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = r.db.ExecContext(ctx, query,
		event.ID.String(), string(event.Class), event.Filename, event.RecordCount,
		string(columnsJSON), event.RegistrationColumn, event.UploadedAt.Time().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record upload event: %w", err)
	}
	return nil
}

// ListRecent returns the newest events first
func (r *UploadLogRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]result.UploadEvent, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var rows []uploadEventRow
	query := r.db.Rebind(`
		SELECT id, class_label, filename, record_count, column_names, registration_column, uploaded_at
		FROM upload_events
		ORDER BY uploaded_at DESC, id DESC
		LIMIT ?
	`)
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list upload events: %w", err)
	}

	events := make([]result.UploadEvent, 0, len(rows))
	for _, row := range rows {
		var columns []string
		if err := json.Unmarshal([]byte(row.Columns), &columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal columns of upload %s: %w", row.ID, err)
		}
		events = append(events, result.UploadEvent{
			ID:                 core.UploadID(row.ID),
			Class:              result.ClassLabel(row.ClassLabel),
			Filename:           row.Filename,
			RecordCount:        row.RecordCount,
			Columns:            columns,
			RegistrationColumn: row.RegistrationColumn,
			UploadedAt:         core.NewTimestamp(row.UploadedAt),
		})
	}
	return events, nil
}
