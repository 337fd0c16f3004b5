package service

import (
	"context"

	"github.com/MKhiriev/planner-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService implements the server side of the sync protocol. The secret
// key is an opaque partition key; no operation touches another key.
type SyncService interface {
	// GetData returns the latest document without version negotiation.
	GetData(ctx context.Context, secretKey string) (models.DataResponse, error)
	// Push replaces the stored snapshot and returns the new version.
	// Last write wins: the client version is never used to reject a push.
	Push(ctx context.Context, secretKey string, req models.PushRequest) (models.PushResponse, error)
	// Pull returns the stored document and reports whether the client is
	// behind. It never mutates anything.
	Pull(ctx context.Context, secretKey string, req models.PullRequest) (models.PullResponse, error)
	// Delete removes the document. It succeeds whether or not one exists.
	Delete(ctx context.Context, secretKey string) (models.DeleteResponse, error)
}

type HealthService interface {
	Health(ctx context.Context) models.HealthResponse
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.VersionResponse
}

// SyncServiceWrapper defines middleware composition for SyncService.
// Implementations wrap an existing SyncService to add behavior such as
// validation or tracing.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService // returns a decorated SyncService applying additional behavior
}
