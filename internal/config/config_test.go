package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"resultdesk/domain/result"
	"resultdesk/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"RESULTDESK_CONFIG", "PORT", "GIN_MODE", "MAX_UPLOAD_MB", "SHUTDOWN_TIMEOUT",
	"ADMIN_PASSKEY", "SESSION_SECRET", "CLASS_LABELS", "ASSUMED_MAX_MARKS",
	"PASS_PERCENTAGE", "SUBJECT_MAX_SUFFIX", "DATABASE_DRIVER", "DATABASE_URL", "LOG_LEVEL",
}

// clearEnv blanks every key Load reads; empty values count as unset
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "Admin1234", cfg.Admin.Passkey)
	assert.Equal(t, []result.ClassLabel{"10", "12"}, cfg.ClassLabels())
	assert.Equal(t, result.DefaultScoringPolicy(), cfg.ScoringPolicy())
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.AuditEnabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_PASSKEY", "s3cret")
	t.Setenv("CLASS_LABELS", " 12 , 10,,12 ")
	t.Setenv("PASS_PERCENTAGE", "40")
	t.Setenv("SUBJECT_MAX_SUFFIX", "_Max")
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("DATABASE_URL", "file:audit.db")
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Admin.Passkey)
	assert.Equal(t, []result.ClassLabel{"12", "10"}, cfg.ClassLabels())
	assert.Equal(t, 40.0, cfg.ScoringPolicy().PassPercentage)
	assert.Equal(t, "_Max", cfg.ScoringPolicy().MaxColumnSuffix)
	assert.Equal(t, 10, cfg.Server.MaxUploadMB)
	assert.True(t, cfg.AuditEnabled())
}

func TestLoadTOMLFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "resultdesk.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = "7000"

[results]
classes = ["9", "10"]
assumed_max_marks = 50.0

[log]
level = "DEBUG"
`), 0o600))
	t.Setenv("RESULTDESK_CONFIG", path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.Server.Port)
	assert.Equal(t, []result.ClassLabel{"9", "10"}, cfg.ClassLabels())
	assert.Equal(t, 50.0, cfg.Results.AssumedMaxMarks)
	assert.Equal(t, 33.0, cfg.Results.PassPercentage)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"blank passkey", map[string]string{"ADMIN_PASSKEY": "   "}},
		{"no classes", map[string]string{"CLASS_LABELS": " , "}},
		{"zero max marks", map[string]string{"ASSUMED_MAX_MARKS": "0"}},
		{"pass mark above 100", map[string]string{"PASS_PERCENTAGE": "101"}},
		{"unknown driver", map[string]string{"DATABASE_DRIVER": "mysql"}},
		{"negative upload size", map[string]string{"MAX_UPLOAD_MB": "-1"}},
		{"missing file", map[string]string{"RESULTDESK_CONFIG": "/does/not/exist.toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
