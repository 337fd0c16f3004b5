package store

import (
	"context"
	"errors"

	"github.com/MKhiriev/planner-sync/internal/tracing"
	"github.com/MKhiriev/planner-sync/models"
)

type tracingDocumentStore struct {
	inner  DocumentStore
	tracer *tracing.Tracer
}

// NewTracingDocumentStore wraps inner so that every call gets a client span.
// Ping and Close are passed through untraced.
func NewTracingDocumentStore(inner DocumentStore, tracer *tracing.Tracer) DocumentStore {
	return &tracingDocumentStore{inner: inner, tracer: tracer}
}

func (t *tracingDocumentStore) GetDocument(ctx context.Context, secretKey string) (doc models.SyncDocument, err error) {
	ctx, span := t.tracer.StartStoreSpan(ctx, "get_document")
	defer func() {
		if errors.Is(err, ErrDocumentNotFound) {
			tracing.EndSpan(span, nil)
			return
		}
		tracing.EndSpan(span, err)
	}()

	return t.inner.GetDocument(ctx, secretKey)
}

func (t *tracingDocumentStore) PushDocument(ctx context.Context, secretKey string, content models.Snapshot) (res models.PushResultDocument, err error) {
	ctx, span := t.tracer.StartStoreSpan(ctx, "push_document")
	defer func() { tracing.EndSpan(span, err) }()

	return t.inner.PushDocument(ctx, secretKey, content)
}

func (t *tracingDocumentStore) DeleteDocument(ctx context.Context, secretKey string) (err error) {
	ctx, span := t.tracer.StartStoreSpan(ctx, "delete_document")
	defer func() { tracing.EndSpan(span, err) }()

	return t.inner.DeleteDocument(ctx, secretKey)
}

func (t *tracingDocumentStore) Ping(ctx context.Context) error {
	return t.inner.Ping(ctx)
}

func (t *tracingDocumentStore) Close(ctx context.Context) error {
	return t.inner.Close(ctx)
}
