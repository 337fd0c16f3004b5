package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// SettingsRepository holds the singleton sync settings record.
	SettingsRepository SettingsRepository
	// SnapshotProvider exports and imports the planner dataset.
	SnapshotProvider SnapshotProvider

	db *DB
}

// NewClientStorages opens the SQLite database named by cfg.DB.DSN, applies the
// client migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Debug().Str("path", cfg.DB.DSN).Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateSQLite(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SettingsRepository: NewSettingsRepository(db, logger),
		SnapshotProvider:   NewSnapshotProvider(db, logger),
		db:                 db,
	}, nil
}

// Path returns the SQLite database file, without any DSN options.
func (c *ClientStorages) Path() string {
	return c.db.path
}

// Close closes the underlying database.
func (c *ClientStorages) Close() error {
	return c.db.Close()
}
