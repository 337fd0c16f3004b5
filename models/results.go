package models

import "time"

// ResultStatus is the outcome of a client-side sync operation.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
	// StatusSkipped is reported when a sync was requested while another one
	// was still in flight.
	StatusSkipped ResultStatus = "skipped"
)

// OperationResult is the generic {status, message} result used by config
// saves and merges.
type OperationResult struct {
	Status  ResultStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// OK reports whether the operation succeeded.
func (r OperationResult) OK() bool {
	return r.Status == StatusSuccess
}

// PullResult is returned by the pull operation. Transport failures are
// reported with Status == StatusError and HasNewData == false.
type PullResult struct {
	Status      ResultStatus `json:"status"`
	HasNewData  bool         `json:"hasNewData"`
	Data        Snapshot     `json:"data,omitempty"`
	Version     int64        `json:"version,omitempty"`
	LastSync    *time.Time   `json:"lastSync,omitempty"`
	HasConflict bool         `json:"hasConflict"`
	Message     string       `json:"message,omitempty"`
}

// PushResult is returned by the push operation.
type PushResult struct {
	Success  bool       `json:"success"`
	Version  int64      `json:"version,omitempty"`
	LastSync *time.Time `json:"lastSync,omitempty"`
	Message  string     `json:"message,omitempty"`
	// Revision is the local edit revision read before the snapshot was
	// exported.
	Revision int64      `json:"-"`
}

// TestConnectionResult is returned by the connection probe.
type TestConnectionResult struct {
	Status       ResultStatus `json:"status"`
	Message      string       `json:"message"`
	ServerStatus string       `json:"serverStatus,omitempty"`
}

// SyncResult is returned by a full push-then-pull sync cycle.
type SyncResult struct {
	Status    ResultStatus `json:"status"`
	Message   string       `json:"message"`
	Pulled    bool         `json:"pulled"`
	Pushed    bool         `json:"pushed"`
	Version   int64        `json:"version"`
	Timestamp time.Time    `json:"timestamp"`
}
