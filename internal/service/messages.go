package service

// Human-readable messages carried in sync responses.
const (
	MsgInitialSyncCompleted = "Initial sync completed"
	MsgSyncCompleted        = "Sync completed"
	MsgNoDataForKey         = "No data found for this key"
	MsgNoDataOnServer       = "No data on server"
	MsgConflictDetected     = "Conflict detected"
	MsgDataUpToDate         = "Data up to date"
	MsgDataDeleted          = "Data deleted"
)

// Health statuses.
const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"

	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)
