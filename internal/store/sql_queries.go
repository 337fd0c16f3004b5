package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/planner-sync/models"
)

const syncDocumentsTable = "sync_documents"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildGetDocumentQuery selects the single document of secretKey.
func buildGetDocumentQuery(secretKey string) (string, []any, error) {
	query, args, err := psql.
		Select("content", "version", "last_sync", "created_at", "updated_at").
		From(syncDocumentsTable).
		Where(sq.Eq{"secret_key": secretKey}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildPushDocumentQuery is a single-statement upsert: the first push inserts
// version 1, a later one bumps the stored version by one. (xmax = 0) is true
// only for a freshly inserted row.
func buildPushDocumentQuery(secretKey string, content models.Snapshot, now time.Time) (string, []any, error) {
	query, args, err := psql.
		Insert(syncDocumentsTable).
		Columns("secret_key", "content", "version", "last_sync", "created_at", "updated_at").
		Values(secretKey, sq.Expr("?::jsonb", string(content)), 1, now, now, now).
		Suffix(`ON CONFLICT (secret_key) DO UPDATE SET
			content = EXCLUDED.content,
			version = sync_documents.version + 1,
			last_sync = EXCLUDED.last_sync,
			updated_at = EXCLUDED.updated_at
			RETURNING version, last_sync, (xmax = 0) AS created`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteDocumentQuery(secretKey string) (string, []any, error) {
	query, args, err := psql.
		Delete(syncDocumentsTable).
		Where(sq.Eq{"secret_key": secretKey}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
