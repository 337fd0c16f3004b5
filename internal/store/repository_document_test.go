package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func newTestDocumentStore(t *testing.T, now time.Time) (*postgresDocumentStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	s := NewPostgresDocumentStore(newDBFromSQL(db)).(*postgresDocumentStore)
	s.now = func() time.Time { return now }
	return s, mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

var documentColumns = []string{"content", "version", "last_sync", "created_at", "updated_at"}

func TestPostgresGetDocument_Found(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, mock := newTestDocumentStore(t, now)

	mock.ExpectQuery(`SELECT content, version, last_sync, created_at, updated_at FROM sync_documents WHERE secret_key = \$1`).
		WithArgs("ABCDEFGH").
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow([]byte(`{"a":2}`), int64(2), now, now.Add(-time.Hour), now))

	doc, err := s.GetDocument(testContext(), "ABCDEFGH")
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGH", doc.SecretKey)
	assert.JSONEq(t, `{"a":2}`, string(doc.Content))
	assert.Equal(t, int64(2), doc.Version)
	assert.Equal(t, now, doc.LastSync)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetDocument_NotFound(t *testing.T) {
	s, mock := newTestDocumentStore(t, time.Now())

	mock.ExpectQuery(`SELECT .* FROM sync_documents`).
		WithArgs("ABCDEFGH").
		WillReturnRows(sqlmock.NewRows(documentColumns))

	_, err := s.GetDocument(testContext(), "ABCDEFGH")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetDocument_QueryError(t *testing.T) {
	s, mock := newTestDocumentStore(t, time.Now())

	mock.ExpectQuery(`SELECT .* FROM sync_documents`).
		WillReturnError(errors.New("boom"))

	_, err := s.GetDocument(testContext(), "ABCDEFGH")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestPostgresPushDocument_Upsert(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, mock := newTestDocumentStore(t, now)

	mock.ExpectQuery(`INSERT INTO sync_documents .* ON CONFLICT \(secret_key\) DO UPDATE SET .*version = sync_documents.version \+ 1.* RETURNING version, last_sync`).
		WithArgs("ABCDEFGH", `{"a":1}`, 1, now, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"version", "last_sync", "created"}).
			AddRow(int64(1), now, true))

	res, err := s.PushDocument(testContext(), "ABCDEFGH", models.Snapshot(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Version)
	assert.Equal(t, now, res.LastSync)
	assert.True(t, res.Created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPushDocument_RetriesTransientError(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, mock := newTestDocumentStore(t, now)

	mock.ExpectQuery(`INSERT INTO sync_documents`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectQuery(`INSERT INTO sync_documents`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "last_sync", "created"}).
			AddRow(int64(5), now, false))

	res, err := s.PushDocument(testContext(), "ABCDEFGH", models.Snapshot(`{}`))
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Version)
	assert.False(t, res.Created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPushDocument_NonRetryableError(t *testing.T) {
	s, mock := newTestDocumentStore(t, time.Now())

	mock.ExpectQuery(`INSERT INTO sync_documents`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation})

	_, err := s.PushDocument(testContext(), "ABCDEFGH", models.Snapshot(`{}`))
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteDocument(t *testing.T) {
	s, mock := newTestDocumentStore(t, time.Now())

	mock.ExpectExec(`DELETE FROM sync_documents WHERE secret_key = \$1`).
		WithArgs("ABCDEFGH").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.DeleteDocument(testContext(), "ABCDEFGH"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteDocument_Error(t *testing.T) {
	s, mock := newTestDocumentStore(t, time.Now())

	mock.ExpectExec(`DELETE FROM sync_documents`).WillReturnError(errors.New("boom"))

	assert.ErrorIs(t, s.DeleteDocument(testContext(), "ABCDEFGH"), ErrExecutingStatement)
}

func TestPostgresPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresDocumentStore(newDBFromSQL(db))
	mock.ExpectPing().WillReturnError(errors.New("down"))

	assert.Error(t, s.Ping(context.Background()))
}

func TestClassifyPgError(t *testing.T) {
	tests := []struct {
		code string
		want ErrorClassification
	}{
		{pgerrcode.ConnectionFailure, Retryable},
		{pgerrcode.SerializationFailure, Retryable},
		{pgerrcode.DeadlockDetected, Retryable},
		{pgerrcode.CannotConnectNow, Retryable},
		{pgerrcode.UniqueViolation, NonRetryable},
		{pgerrcode.SyntaxError, NonRetryable},
		{"XX000", NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPgError(&pgconn.PgError{Code: tt.code}))
		})
	}

	c := NewPostgresErrorClassifier()
	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
}

func TestWithRetry_StopsOnContextCancel(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := db.withRetry(ctx, func() error {
		calls++
		return &pgconn.PgError{Code: pgerrcode.ConnectionFailure}
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
