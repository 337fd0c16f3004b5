package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/migrations"
)

// NewConnectSQLite opens the client database file, creating it when missing.
// WAL journaling and a busy timeout let the CLI write while a long-running
// client holds the file; options given in the DSN take precedence.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	path, options, err := parseSQLiteDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid sqlite DSN: %w", err)
	}

	if err = createLocalDBFileIfNotExists(path); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	if options.Get("_busy_timeout") == "" {
		options.Set("_busy_timeout", "5000")
	}
	if options.Get("_journal_mode") == "" {
		options.Set("_journal_mode", "WAL")
	}

	conn, err := sql.Open("sqlite3", "file:"+path+"?"+options.Encode())
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{
		DB:     conn,
		logger: log,
		path:   path,
	}, nil
}

// parseSQLiteDSN accepts a plain path or a "file:" URI with query options.
func parseSQLiteDSN(dsn string) (string, url.Values, error) {
	path, rawQuery, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	options, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", nil, err
	}
	if path == "" {
		return "", nil, fmt.Errorf("no database file in %q", dsn)
	}
	return path, options, nil
}

// MigrateSQLite applies the client schema.
func (db *DB) MigrateSQLite() error {
	return migrations.MigrateSQLite(db.DB)
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		if dir := filepath.Dir(dbFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("error creating DB dir: %w", err)
			}
		}

		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
