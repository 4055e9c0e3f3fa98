package main

import (
	"fmt"
	"net/url"
	"os"

	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/config"
	"github.com/edushetra/edushetra-api/pkg/db"
	"github.com/edushetra/edushetra-api/pkg/logger"
)

// usage: migrate [up|down]
func main() {
	arg := ""
	if len(os.Args) > 1 {
		arg = os.Args[1]
	}
	dir, err := db.ParseDirection(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nusage: migrate [up|down]\n", err)
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Database.URL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required to run migrations")
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: "edushetra-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting database migrations",
		zap.String("direction", string(dir)),
		zap.String("database", maskDatabaseURL(cfg.Database.URL)))

	result, err := db.Migrate(cfg.Database.URL, "file://migrations", dir)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if !result.Changed {
		logger.Info("Database schema already up to date", zap.Uint("version", result.Version))
		return
	}
	logger.Info("Database migrations completed successfully",
		zap.Uint("version", result.Version),
		zap.Bool("dirty", result.Dirty))
}

// maskDatabaseURL hides credentials so the URL can be logged
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	if u.User != nil {
		u.User = url.User(u.User.Username())
	}
	u.RawQuery = ""
	return u.String()
}
