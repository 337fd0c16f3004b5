package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/limiter"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/service"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/internal/tracing"
	"github.com/MKhiriev/planner-sync/models"
)

const testSecretKey = "ABCDEFGH"

// memDocumentStore is an in-memory DocumentStore used to drive the full
// router without a database.
type memDocumentStore struct {
	mu      sync.Mutex
	docs    map[string]models.SyncDocument
	pushes  int
	pingErr error
}

func newMemDocumentStore() *memDocumentStore {
	return &memDocumentStore{docs: make(map[string]models.SyncDocument)}
}

func (m *memDocumentStore) GetDocument(_ context.Context, secretKey string) (models.SyncDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[secretKey]
	if !ok {
		return models.SyncDocument{}, store.ErrDocumentNotFound
	}
	return doc, nil
}

func (m *memDocumentStore) PushDocument(_ context.Context, secretKey string, content models.Snapshot) (models.PushResultDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushes++

	now := time.Now().UTC()
	doc, ok := m.docs[secretKey]
	if !ok {
		doc = models.SyncDocument{SecretKey: secretKey, CreatedAt: now}
	}
	doc.Content = append(models.Snapshot(nil), content...)
	doc.Version++
	doc.LastSync = now
	doc.UpdatedAt = now
	m.docs[secretKey] = doc

	return models.PushResultDocument{Version: doc.Version, LastSync: now, Created: !ok}, nil
}

func (m *memDocumentStore) DeleteDocument(_ context.Context, secretKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, secretKey)
	return nil
}

func (m *memDocumentStore) Ping(context.Context) error { return m.pingErr }

func (m *memDocumentStore) Close(context.Context) error { return nil }

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		Server: config.Server{MaxBodyBytes: 1 << 20},
		Auth:   config.Auth{MinSecretKeyLength: 8},
	}
}

// newTestRouter wires real services over docs. A nil rateLimiter disables
// rate limiting.
func newTestRouter(t *testing.T, docs store.DocumentStore, rateLimiter *limiter.FixedWindow, cfg config.StructuredConfig) http.Handler {
	t.Helper()

	services, err := service.NewServices(
		&store.Storages{DocumentStore: docs},
		cfg,
		models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"),
		tracing.Nop(),
		logger.Nop(),
	)
	require.NoError(t, err)

	return NewHandler(services, rateLimiter, tracing.Nop(), cfg, logger.Nop()).Init()
}

// newMockRouter wires the router over arbitrary services.
func newMockRouter(services *service.Services) http.Handler {
	return NewHandler(services, nil, tracing.Nop(), testConfig(), logger.Nop()).Init()
}

func doRequest(t *testing.T, router http.Handler, method, path, secretKey, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if secretKey != "" {
		req.Header.Set(secretKeyHeader, secretKey)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
