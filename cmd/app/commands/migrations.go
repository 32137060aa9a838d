package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/datashare/internal/config"
)

// RunMigrations creates the kv_entries table for the postgres and mysql
// drivers. The embedded drivers need no schema, so it returns immediately.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	switch driver {
	case config.DriverMemory, config.DriverBadger, config.DriverLevelDB:
		logger.Info("driver has no schema, skipping migrations", slog.String("driver", driver))
		return nil
	}

	logger.Info("running database migrations", slog.String("driver", driver))

	migrationsPath := "file://migrations/postgresql"
	if driver == config.DriverMySQL {
		migrationsPath = "file://migrations/mysql"
	}

	m, err := migrate.New(migrationsPath, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
