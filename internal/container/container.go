package container

import (
	"fmt"

	"resultdesk/adapters/excel"
	"resultdesk/adapters/memory"
	"resultdesk/adapters/postgres"
	"resultdesk/app"
	"resultdesk/internal"
	"resultdesk/internal/config"
	"resultdesk/ports"
	"resultdesk/ui"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Adapters
	Store     *memory.ResultStore
	Reader    *excel.DataReader
	UploadLog ports.UploadLogRepository

	// Services
	Ingestion *app.IngestionService
	Lookup    *app.LookupService
	Summaries *app.SummaryService
	Gate      *app.AdminGate
}

// New creates a container with the in-memory result table and no audit log
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		Store:  memory.NewResultStore(),
		Reader: excel.NewDataReader(excel.DefaultReaderConfig(), logger),
	}
	c.initServices()
	return c, nil
}

// InitWithDatabase enables the upload audit log on db
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db
	c.UploadLog = postgres.NewUploadLogRepository(db)
	c.initServices()

	c.Logger.With("Container").Info("Upload audit log enabled (%s)", db.DriverName())
	return nil
}

// initServices (re)builds the services from the current adapters
func (c *Container) initServices() {
	classes := c.Config.ClassLabels()
	policy := c.Config.ScoringPolicy()

	c.Ingestion = app.NewIngestionService(c.Reader, c.Store, c.UploadLog, classes, c.Config.MaxUploadBytes(), c.Logger)
	c.Lookup = app.NewLookupService(c.Store, classes, policy, c.Logger)
	c.Summaries = app.NewSummaryService(c.Store, classes, policy, c.Logger)
	c.Gate = app.NewAdminGate(c.Config.Admin.Passkey)
}

// ServerDependencies returns what the web server needs
func (c *Container) ServerDependencies() ui.Dependencies {
	return ui.Dependencies{
		Ingestion:      c.Ingestion,
		Lookup:         c.Lookup,
		Summaries:      c.Summaries,
		Gate:           c.Gate,
		Classes:        c.Config.ClassLabels(),
		MaxUploadBytes: c.Config.MaxUploadBytes(),
		SessionSecret:  c.Config.Admin.SessionSecret,
		Logger:         c.Logger,
	}
}

// Shutdown releases the database connection if one was opened
func (c *Container) Shutdown() error {
	if c.DB == nil {
		return nil
	}
	if err := c.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
