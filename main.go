package main

import (
	"context"
	"embed"
	stderrors "errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resultdesk/adapters/postgres"
	"resultdesk/internal"
	"resultdesk/internal/config"
	"resultdesk/internal/container"
	"resultdesk/internal/errors"
	"resultdesk/internal/migration"
	"resultdesk/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

//go:embed ui/templates/*.html ui/static/*
var embeddedFiles embed.FS

// initDatabase opens the audit database and runs migrations
func initDatabase(ctx context.Context, appConfig *config.Config) (*sqlx.DB, error) {
	db, err := postgres.Open(ctx, appConfig.Database.Driver, appConfig.Database.URL)
	if err != nil {
		return nil, err
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	gin.SetMode(appConfig.Server.GinMode)
	if appConfig.Admin.SessionSecret == config.DevSessionSecret {
		logger.Warn("SESSION_SECRET is not set; using the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, appConfig, logger)
	stop()
	if err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the listener fails. The container is
// always shut down before it returns.
func run(ctx context.Context, appConfig *config.Config, logger *internal.Logger) error {
	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		return errors.Wrap(err, "failed to create application container")
	}
	defer func() {
		if err := appContainer.Shutdown(); err != nil {
			logger.Warn("Shutdown: %v", err)
		}
	}()

	if appConfig.AuditEnabled() {
		db, err := initDatabase(ctx, appConfig)
		if err != nil {
			return errors.Wrap(err, "failed to initialize database")
		}
		if err := appContainer.InitWithDatabase(db); err != nil {
			db.Close()
			return errors.Wrap(err, "failed to initialize container")
		}
	} else {
		logger.Info("DATABASE_URL not set; upload audit log disabled")
	}

	assets, err := fs.Sub(embeddedFiles, "ui")
	if err != nil {
		return errors.Wrap(err, "failed to open embedded assets")
	}
	server, err := ui.NewServer(appContainer.ServerDependencies(), assets)
	if err != nil {
		return errors.Wrap(err, "failed to create server")
	}

	httpServer := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Result desk listening on %s (classes %v)", httpServer.Addr, appConfig.Results.Classes)
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
