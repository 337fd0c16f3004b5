// Package migrations embeds the goose migrations of the server document
// store (PostgreSQL) and the client local store (SQLite).
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql
var postgresMigrations embed.FS

//go:embed sqlite/*.sql
var sqliteMigrations embed.FS

// MigratePostgres applies pending server migrations.
func MigratePostgres(db *sql.DB) error {
	return migrate(db, postgresMigrations, "pgx", "postgres")
}

// MigrateSQLite applies pending client migrations.
func MigrateSQLite(db *sql.DB) error {
	return migrate(db, sqliteMigrations, "sqlite3", "sqlite")
}

func migrate(db *sql.DB, fsys embed.FS, dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(fsys)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
