package container

import (
	"context"
	"strings"
	"testing"

	"resultdesk/adapters/postgres"
	"resultdesk/app"
	"resultdesk/internal"
	"resultdesk/internal/config"
	"resultdesk/internal/migration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutDatabase(t *testing.T) {
	c, err := New(config.Default(), internal.NewLogger(internal.LogLevelError))
	require.NoError(t, err)

	assert.False(t, c.Ingestion.AuditEnabled())
	deps := c.ServerDependencies()
	assert.Equal(t, int64(10<<20), deps.MaxUploadBytes)
	assert.Len(t, deps.Classes, 2)
	assert.NoError(t, c.Shutdown())

	_, err = New(nil, nil)
	assert.Error(t, err)
}

func TestInitWithDatabaseRecordsUploads(t *testing.T) {
	ctx := context.Background()
	c, err := New(config.Default(), internal.NewLogger(internal.LogLevelError))
	require.NoError(t, err)

	db, err := postgres.Open(ctx, postgres.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, migration.NewRunner().Run(ctx, db))
	require.NoError(t, c.InitWithDatabase(db))
	t.Cleanup(func() { c.Shutdown() })

	_, err = c.Ingestion.Ingest(ctx, app.UploadRequest{
		Class:    "12",
		Filename: "class12.csv",
		Content:  strings.NewReader("RegNo,Name\nR1,Asha\n"),
	})
	require.NoError(t, err)

	events, err := c.Ingestion.RecentUploads(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "class12.csv", events[0].Filename)

	assert.Error(t, c.InitWithDatabase(nil))
}
