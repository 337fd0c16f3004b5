package store

import (
	"context"

	"github.com/MKhiriev/planner-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentStore persists exactly zero or one sync document per secret key.
type DocumentStore interface {
	// GetDocument returns the document stored under secretKey or
	// ErrDocumentNotFound.
	GetDocument(ctx context.Context, secretKey string) (models.SyncDocument, error)
	// PushDocument replaces the content stored under secretKey and
	// atomically assigns the next version: 1 for a new key, previous+1
	// otherwise.
	PushDocument(ctx context.Context, secretKey string, content models.Snapshot) (models.PushResultDocument, error)
	// DeleteDocument removes the document. Deleting a missing key is not an
	// error.
	DeleteDocument(ctx context.Context, secretKey string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	// Close releases the connection.
	Close(ctx context.Context) error
}
