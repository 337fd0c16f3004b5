package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
)

// postgresDocumentStore is the PostgreSQL-backed [DocumentStore]. Content is
// kept in a JSONB column.
type postgresDocumentStore struct {
	*DB
	now func() time.Time
}

// NewPostgresDocumentStore constructs a [DocumentStore] on an open connection.
func NewPostgresDocumentStore(db *DB) DocumentStore {
	return &postgresDocumentStore{DB: db, now: time.Now}
}

func (p *postgresDocumentStore) GetDocument(ctx context.Context, secretKey string) (models.SyncDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetDocumentQuery(secretKey)
	if err != nil {
		return models.SyncDocument{}, err
	}

	var (
		doc     models.SyncDocument
		content []byte
	)
	err = p.withRetry(ctx, func() error {
		return p.DB.QueryRowContext(ctx, query, args...).
			Scan(&content, &doc.Version, &doc.LastSync, &doc.CreatedAt, &doc.UpdatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncDocument{}, ErrDocumentNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "postgresDocumentStore.GetDocument").
			Msg("failed to query sync document")
		return models.SyncDocument{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	doc.SecretKey = secretKey
	doc.Content = models.Snapshot(content)

	return doc, nil
}

func (p *postgresDocumentStore) PushDocument(ctx context.Context, secretKey string, content models.Snapshot) (models.PushResultDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPushDocumentQuery(secretKey, content, p.now().UTC())
	if err != nil {
		return models.PushResultDocument{}, err
	}

	var result models.PushResultDocument
	err = p.withRetry(ctx, func() error {
		return p.DB.QueryRowContext(ctx, query, args...).
			Scan(&result.Version, &result.LastSync, &result.Created)
	})
	if err != nil {
		log.Err(err).
			Str("func", "postgresDocumentStore.PushDocument").
			Msg("failed to upsert sync document")
		return models.PushResultDocument{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result, nil
}

func (p *postgresDocumentStore) DeleteDocument(ctx context.Context, secretKey string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteDocumentQuery(secretKey)
	if err != nil {
		return err
	}

	err = p.withRetry(ctx, func() error {
		_, execErr := p.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "postgresDocumentStore.DeleteDocument").
			Msg("failed to delete sync document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (p *postgresDocumentStore) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}

func (p *postgresDocumentStore) Close(_ context.Context) error {
	return p.DB.Close()
}
