package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations brings the book club schema up to date by applying pending
// migration files from migrationsDir. goose records applied versions in the
// database, so rerunning at every boot is a no-op once current.
func RunMigrations(databaseURL, migrationsDir string) error {
	// goose drives database/sql, not the pgx native protocol the pool
	// uses, so migrations go through the stdlib adapter.
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
