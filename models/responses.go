package models

import "time"

// DataResponse is returned by GET /sync/data, and by POST /sync/pull when no
// document exists for the key.
type DataResponse struct {
	Exists   bool       `json:"exists"`
	Data     Snapshot   `json:"data,omitempty"`
	Version  int64      `json:"version,omitempty"`
	LastSync *time.Time `json:"lastSync,omitempty"`
	Message  string     `json:"message,omitempty"`
}

// PullResponse is returned by POST /sync/pull for an existing document.
// HasConflict is true iff the client's version is behind the stored one.
type PullResponse struct {
	Exists      bool       `json:"exists"`
	Data        Snapshot   `json:"data,omitempty"`
	Version     int64      `json:"version,omitempty"`
	LastSync    *time.Time `json:"lastSync,omitempty"`
	HasConflict bool       `json:"hasConflict"`
	Message     string     `json:"message,omitempty"`
}

// PushResponse is returned by POST /sync/push.
type PushResponse struct {
	Success  bool      `json:"success"`
	Version  int64     `json:"version"`
	LastSync time.Time `json:"lastSync"`
	Message  string    `json:"message,omitempty"`
}

// DeleteResponse is returned by DELETE /sync/data.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the body of every non-2xx answer.
// RetryAfter (seconds) is set only for 429 responses.
type ErrorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}
