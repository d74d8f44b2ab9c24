package db

import (
	"database/sql"
	"embed"
	"fmt"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open opens (creating if needed) the SQLite database at dbPath and applies
// any pending migrations.
func Open(dbPath string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on", dbPath)
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(database); err != nil {
		if cerr := database.Close(); cerr != nil {
			return nil, fmt.Errorf("run migrations: %w (also failed to close db: %v)", err, cerr)
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return database, nil
}

var testDBCounter atomic.Int64

// OpenForTesting returns an isolated in-memory database with all migrations
// applied. Each call gets its own database; the single-connection limit keeps
// the shared-cache memory store alive for the lifetime of the handle.
func OpenForTesting() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:shamba_test_%d?mode=memory&cache=shared&_foreign_keys=on", testDBCounter.Add(1))
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open test database: %w", err)
	}
	database.SetMaxOpenConns(1)

	if err := runMigrations(database); err != nil {
		if cerr := database.Close(); cerr != nil {
			return nil, fmt.Errorf("run migrations: %w (also failed to close db: %v)", err, cerr)
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return database, nil
}

func runMigrations(database *sql.DB) error {
	driver, err := sqlite.WithInstance(database, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
