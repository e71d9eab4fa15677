package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"resultdesk/domain/result"
	"resultdesk/internal/errors"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Admin    AdminConfig    `toml:"admin"`
	Results  ResultsConfig  `toml:"results"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string        `toml:"port"`
	GinMode         string        `toml:"gin_mode"`
	MaxUploadMB     int           `toml:"max_upload_mb"`
	ShutdownTimeout time.Duration `toml:"-"`
}

// AdminConfig holds the admin gate settings
type AdminConfig struct {
	Passkey       string `toml:"passkey"`
	SessionSecret string `toml:"session_secret"`
}

// ResultsConfig holds class labels and scoring rules
type ResultsConfig struct {
	Classes          []string `toml:"classes"`
	AssumedMaxMarks  float64  `toml:"assumed_max_marks"`
	PassPercentage   float64  `toml:"pass_percentage"`
	SubjectMaxSuffix string   `toml:"subject_max_suffix"`
}

// DatabaseConfig holds the optional upload audit database. An empty URL
// disables the audit log.
type DatabaseConfig struct {
	Driver string `toml:"driver"`
	URL    string `toml:"url"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
}

// DevSessionSecret is used when SESSION_SECRET is not configured
const DevSessionSecret = "resultdesk-development-session-secret"

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			GinMode:         "debug",
			MaxUploadMB:     10,
			ShutdownTimeout: 10 * time.Second,
		},
		Admin: AdminConfig{
			Passkey:       "Admin1234",
			SessionSecret: DevSessionSecret,
		},
		Results: ResultsConfig{
			Classes:         []string{"10", "12"},
			AssumedMaxMarks: 100,
			PassPercentage:  33,
		},
		Database: DatabaseConfig{
			Driver: "postgres",
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file named by
// RESULTDESK_CONFIG, and environment variables, in that order of precedence
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("RESULTDESK_CONFIG"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, errors.Wrap(err, "failed to load configuration file")
		}
	}

	applyEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, fmt.Sprintf("cannot read %s", path), err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, fmt.Sprintf("invalid TOML in %s", path), err)
	}
	return nil
}

func applyEnv(config *Config) {
	config.Server.Port = getEnvOrDefault("PORT", config.Server.Port)
	config.Server.GinMode = getEnvOrDefault("GIN_MODE", config.Server.GinMode)
	config.Server.MaxUploadMB = getEnvIntOrDefault("MAX_UPLOAD_MB", config.Server.MaxUploadMB)
	config.Server.ShutdownTimeout = getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", config.Server.ShutdownTimeout)

	config.Admin.Passkey = getEnvOrDefault("ADMIN_PASSKEY", config.Admin.Passkey)
	config.Admin.SessionSecret = getEnvOrDefault("SESSION_SECRET", config.Admin.SessionSecret)

	if labels := os.Getenv("CLASS_LABELS"); labels != "" {
		config.Results.Classes = strings.Split(labels, ",")
	}
	config.Results.Classes = normalizeClasses(config.Results.Classes)
	config.Results.AssumedMaxMarks = getEnvFloatOrDefault("ASSUMED_MAX_MARKS", config.Results.AssumedMaxMarks)
	config.Results.PassPercentage = getEnvFloatOrDefault("PASS_PERCENTAGE", config.Results.PassPercentage)
	config.Results.SubjectMaxSuffix = getEnvOrDefault("SUBJECT_MAX_SUFFIX", config.Results.SubjectMaxSuffix)

	config.Database.Driver = getEnvOrDefault("DATABASE_DRIVER", config.Database.Driver)
	config.Database.URL = getEnvOrDefault("DATABASE_URL", config.Database.URL)

	config.Log.Level = getEnvOrDefault("LOG_LEVEL", config.Log.Level)
}

// normalizeClasses trims labels and drops blanks and repeats, keeping order
func normalizeClasses(classes []string) []string {
	seen := make(map[string]bool, len(classes))
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Server.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if strings.TrimSpace(config.Admin.Passkey) == "" {
		return errors.ConfigInvalid("admin passkey is required")
	}
	if config.Admin.SessionSecret == "" {
		return errors.ConfigInvalid("session secret is required")
	}
	if len(config.Results.Classes) == 0 {
		return errors.ConfigInvalid("at least one class label is required")
	}
	if config.Results.AssumedMaxMarks <= 0 {
		return errors.ConfigInvalid("ASSUMED_MAX_MARKS must be positive")
	}
	if config.Results.PassPercentage < 0 || config.Results.PassPercentage > 100 {
		return errors.ConfigInvalid("PASS_PERCENTAGE must be between 0 and 100")
	}
	switch config.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("unsupported DATABASE_DRIVER %q", config.Database.Driver))
	}
	return nil
}

// ClassLabels returns the configured classes in lookup order
func (c *Config) ClassLabels() []result.ClassLabel {
	labels := make([]result.ClassLabel, len(c.Results.Classes))
	for i, class := range c.Results.Classes {
		labels[i] = result.ClassLabel(class)
	}
	return labels
}

// ScoringPolicy returns the marksheet scoring rules
func (c *Config) ScoringPolicy() result.ScoringPolicy {
	return result.ScoringPolicy{
		AssumedMax:      c.Results.AssumedMaxMarks,
		PassPercentage:  c.Results.PassPercentage,
		MaxColumnSuffix: c.Results.SubjectMaxSuffix,
	}
}

// MaxUploadBytes returns the upload size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// AuditEnabled reports whether uploads are recorded in a database
func (c *Config) AuditEnabled() bool {
	return c.Database.URL != ""
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
