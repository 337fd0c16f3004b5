package service

import (
	"context"
	"time"

	"github.com/MKhiriev/planner-sync/models"
)

// SyncConfigManager reads and writes the sync block of the singleton client
// settings record.
type SyncConfigManager interface {
	// EnsureSyncConfig creates the settings record from defaults unless it
	// already exists and returns the stored config.
	EnsureSyncConfig(ctx context.Context, defaults models.SyncConfig) (models.SyncConfig, error)

	// GetSyncConfig returns the stored config, or nil when no settings
	// record exists yet. A record with sync disabled is still returned.
	GetSyncConfig(ctx context.Context) (*models.SyncConfig, error)

	// SaveSyncConfig merges update into the stored config and always stamps
	// version and lastSync so a restarted client resumes from them. Failures,
	// including a missing settings record, are reported in the result.
	SaveSyncConfig(ctx context.Context, update models.SyncConfigUpdate, version int64, lastSync *time.Time) models.OperationResult
}

// SyncOperations is the network boundary of the client. None of its methods
// return an error: every failure is turned into a result value.
type SyncOperations interface {
	// PullFromServer asks the server for its document. HasNewData is true
	// when the server version is ahead of localVersion.
	PullFromServer(ctx context.Context, serverURL, secretKey string, localVersion int64, lastSync *time.Time) models.PullResult

	// PushToServer exports a full local snapshot and pushes it.
	PushToServer(ctx context.Context, serverURL, secretKey string, localVersion int64) models.PushResult

	// MergeServerData replaces the whole local dataset with snapshot.
	MergeServerData(ctx context.Context, snapshot models.Snapshot, serverVersion int64) models.OperationResult

	// TestConnection probes /health and then authenticates against
	// /sync/data.
	TestConnection(ctx context.Context, serverURL, secretKey string) models.TestConnectionResult

	// DeleteFromServer removes the server document of secretKey.
	DeleteFromServer(ctx context.Context, serverURL, secretKey string) models.OperationResult

	// LocalRevision returns the current local edit revision.
	LocalRevision(ctx context.Context) (int64, error)
}

// ClientSyncService is the facade used by the planner-sync CLI.
type ClientSyncService interface {
	// Initialize ensures the settings record exists and loads the stored
	// config, version and last sync time into the runtime state. Local edits
	// newer than the last push are marked as pending.
	Initialize(ctx context.Context) (models.SyncConfig, error)

	// Sync pushes pending local changes, then pulls and merges newer server
	// data. A call made while another sync is running returns StatusSkipped
	// and schedules one follow-up run.
	Sync(ctx context.Context, manual bool) models.SyncResult

	// GetStatus returns the read-only sync status.
	GetStatus() models.SyncStatus

	// GetConfig returns the stored config or nil.
	GetConfig(ctx context.Context) (*models.SyncConfig, error)

	// SaveConfig persists update and applies it to the running state.
	SaveConfig(ctx context.Context, update models.SyncConfigUpdate) models.OperationResult

	// TestConnection probes a server with the given credentials.
	TestConnection(ctx context.Context, serverURL, secretKey string) models.TestConnectionResult

	// DeleteServerData removes the server document and resets the local
	// version to 0.
	DeleteServerData(ctx context.Context) models.OperationResult

	// StartAutoSync starts the periodic sync when the config enables it and
	// reports whether it is running. Calling it again restarts the timer.
	StartAutoSync() bool

	// StopAutoSync stops the periodic sync. It is safe to call at any time.
	StopAutoSync()

	// TriggerDebouncedSync records a local change and syncs once no further
	// change arrived for the debounce delay.
	TriggerDebouncedSync()

	// NotifyDataChange is the hook for local edits; it triggers a debounced
	// sync.
	NotifyDataChange()

	// MarkLocalChanges records a local change without scheduling a sync, so
	// the next Sync pushes.
	MarkLocalChanges()

	// CancelDebouncedSync drops a pending debounced sync.
	CancelDebouncedSync()

	// Close stops both timers and waits for background syncs to finish.
	Close()
}
