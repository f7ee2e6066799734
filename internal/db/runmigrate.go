package db

import (
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// runSQLMigrations executes migrations in ./migrations using golang-migrate
// file source. The migration SQL is postgres dialect (BIGSERIAL, TIMESTAMPTZ),
// so the versioned path refuses sqlite DSNs; sqlite deployments use
// AutoMigrate.
func runSQLMigrations(dsn string) error {
	if !isPostgres(dsn) {
		return fmt.Errorf("versioned migrations require a postgres DSN, got %q (unset MIGRATIONS to use AutoMigrate)", dsn)
	}
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
