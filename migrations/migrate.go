// Package migrations embeds the SQL schema of the server (PostgreSQL) and of
// the client's local session database (SQLite) and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Migrate brings the server's PostgreSQL schema up to date.
func Migrate(db *sql.DB) error {
	return migrate(db, "pgx", "postgres")
}

// MigrateClient brings the client's SQLite schema up to date.
func MigrateClient(db *sql.DB) error {
	return migrate(db, "sqlite3", "sqlite")
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
