package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/planner-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SettingsRepository persists the singleton client settings record.
type SettingsRepository interface {
	// EnsureSettings creates the record from defaults unless it exists and
	// returns the stored record.
	EnsureSettings(ctx context.Context, defaults models.SyncConfig) (models.SyncConfig, error)
	// GetSettings returns the record or ErrSettingsNotFound.
	GetSettings(ctx context.Context) (models.SyncConfig, error)
	// UpdateSyncSettings applies the non-nil fields of update and always
	// stamps version and lastSync. Returns ErrSettingsNotFound when the
	// record does not exist.
	UpdateSyncSettings(ctx context.Context, update models.SyncConfigUpdate, version int64, lastSync *time.Time) (models.SyncConfig, error)
}

// SnapshotProvider exports and imports the whole local planner dataset.
type SnapshotProvider interface {
	// Export returns a full snapshot of all collections.
	Export(ctx context.Context) (models.Snapshot, error)
	// Import replaces every collection with the content of snapshot.
	Import(ctx context.Context, snapshot models.Snapshot) error
	// Put replaces one collection as a local edit and bumps the revision.
	Put(ctx context.Context, collection string, body json.RawMessage) error
	// Revision is a durable counter of local edits; imports do not change
	// it.
	Revision(ctx context.Context) (int64, error)
}
