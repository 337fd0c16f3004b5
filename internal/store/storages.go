package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
)

// Storages groups the server-side storage dependencies.
type Storages struct {
	DocumentStore DocumentStore
}

// NewStorages connects the document store selected by the DSN scheme and
// prepares its schema. Any failure here is fatal for the server.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("backend", cfg.DB.Backend()).Msg("creating new storages...")

	switch cfg.DB.Backend() {
	case config.BackendPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return &Storages{DocumentStore: NewPostgresDocumentStore(db)}, nil

	case config.BackendMongo:
		docStore, err := NewConnectMongo(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("mongo connection error: %w", err)
		}
		return &Storages{DocumentStore: docStore}, nil
	}

	return nil, ErrUnsupportedBackend
}

// Close releases every storage connection.
func (s *Storages) Close(ctx context.Context) error {
	return s.DocumentStore.Close(ctx)
}
