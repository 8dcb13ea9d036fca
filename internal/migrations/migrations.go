package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var MigrationFiles embed.FS

// RunMigrations brings the expenses schema up to the latest embedded version.
// With autoMigrate false it reports the current version and applies nothing.
func RunMigrations(db *sql.DB, autoMigrate bool) error {
	sourceDriver, err := iofs.New(MigrationFiles, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("read current migration version: %w", err)
	}

	if dirty {
		slog.Warn("Migration state is dirty, forcing back to recorded version",
			"version", version,
		)

		// The schema is a single baseline migration, so forcing the recorded
		// version cannot strand a half-applied intermediate step.
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("clear dirty migration state at version %d: %w", version, err)
		}
		slog.Info("Cleared dirty migration state", "version", version)
	}

	if !autoMigrate {
		slog.Info("Auto-migration disabled, leaving schema untouched",
			"current_version", version,
			"dirty", dirty,
		)
		return nil
	}

	slog.Info("Applying expense schema migrations", "current_version", version)

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			slog.Info("Expense schema already up to date", "version", version)
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("read updated migration version: %w", err)
	}

	slog.Info("Expense schema migrations applied",
		"from_version", version,
		"to_version", newVersion,
	)

	return nil
}
