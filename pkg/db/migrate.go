package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Register file source driver
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// Direction selects which way migrations run
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MigrationResult reports the schema version after a run
type MigrationResult struct {
	Version uint
	Dirty   bool
	Changed bool
}

// ParseDirection maps a CLI argument onto a Direction
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, "":
		return Up, nil
	case Down:
		return Down, nil
	default:
		return "", fmt.Errorf("unknown migration direction %q", s)
	}
}

// RunMigrations applies every pending up migration
func RunMigrations(databaseURL, migrationsPath string) (MigrationResult, error) {
	return Migrate(databaseURL, migrationsPath, Up)
}

// Migrate runs migrations from migrationsPath (e.g. "file://migrations") in
// the given direction. ErrNoChange is reported as Changed=false, not an error.
func Migrate(databaseURL, migrationsPath string, dir Direction) (MigrationResult, error) {
	var result MigrationResult

	connConfig, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return result, fmt.Errorf("failed to parse database URL: %w", err)
	}

	tlsConfig, err := configureTLS(databaseURL)
	if err != nil {
		return result, fmt.Errorf("failed to configure TLS: %w", err)
	}
	if tlsConfig != nil {
		connConfig.TLSConfig = tlsConfig
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	defer sqlDB.Close()

	if pingErr := sqlDB.Ping(); pingErr != nil {
		return result, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return result, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return result, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	switch dir {
	case Down:
		err = m.Down()
	default:
		err = m.Up()
	}
	switch {
	case errors.Is(err, migrate.ErrNoChange):
	case err != nil:
		return result, fmt.Errorf("failed to run %s migrations: %w", dir, err)
	default:
		result.Changed = true
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return result, fmt.Errorf("failed to read schema version: %w", err)
	}
	result.Version = version
	result.Dirty = dirty

	return result, nil
}
