package postgres

import (
	"context"
	"testing"
	"time"

	"resultdesk/domain/core"
	"resultdesk/domain/result"
	"resultdesk/internal/migration"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.NewRunner().Run(ctx, db))
	return db
}

func event(class string, filename string, at time.Time) result.UploadEvent {
	return result.UploadEvent{
		ID:                 core.NewUploadID(),
		Class:              result.ClassLabel(class),
		Filename:           filename,
		RecordCount:        3,
		Columns:            []string{"RegNo", "Name", "Maths"},
		RegistrationColumn: "RegNo",
		UploadedAt:         core.NewTimestamp(at),
	}
}

func TestUploadLogRecordAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewUploadLogRepository(newTestDB(t))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := event("10", "class10.xlsx", base)
	second := event("12", "class12.xlsx", base.Add(time.Hour))

	require.NoError(t, repo.Record(ctx, first))
	require.NoError(t, repo.Record(ctx, second))

	events, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, second.ID, events[0].ID)
	assert.Equal(t, result.ClassLabel("12"), events[0].Class)
	assert.Equal(t, first.ID, events[1].ID)
	assert.Equal(t, []string{"RegNo", "Name", "Maths"}, events[1].Columns)
	assert.Equal(t, "RegNo", events[1].RegistrationColumn)
	assert.Equal(t, 3, events[1].RecordCount)
	assert.True(t, events[1].UploadedAt.Time().Equal(base))
}

func TestUploadLogListRespectsLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewUploadLogRepository(newTestDB(t))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Record(ctx, event("10", "f.xlsx", base.Add(time.Duration(i)*time.Minute))))
	}

	events, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestUploadLogNilColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewUploadLogRepository(newTestDB(t))

	e := event("10", "empty.csv", time.Now())
	e.Columns = nil
	e.RegistrationColumn = ""
	require.NoError(t, repo.Record(ctx, e))

	events, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Columns)
	assert.Empty(t, events[0].RegistrationColumn)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	_, err := Open(context.Background(), DriverSQLite, "")
	assert.Error(t, err)

	_, err = Open(context.Background(), "mysql", "dsn")
	assert.Error(t, err)
}
