package main

import (
	"context"
	"log"
	"os"
	"time"

	"resultdesk/adapters/postgres"
	"resultdesk/internal/migration"

	"github.com/joho/godotenv"
)

// migrate creates the upload audit schema without starting the server.
// Usage: migrate [driver] [database_url]; both default to the environment.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	driver := os.Getenv("DATABASE_DRIVER")
	if driver == "" {
		driver = postgres.DriverPostgres
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if len(os.Args) > 1 {
		driver = os.Args[1]
	}
	if len(os.Args) > 2 {
		databaseURL = os.Args[2]
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, driver, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Migrations applied (version %s, driver %s)", runner.Version(), driver)
}
