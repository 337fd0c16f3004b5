// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PushRequest is the body of POST /sync/push.
type PushRequest struct {
	// Data is the full snapshot that replaces the stored document content.
	Data Snapshot `json:"data"`

	// ClientVersion is the last version the client knows about. The server
	// accepts it for logging only; it never rejects a push because of it.
	ClientVersion int64 `json:"clientVersion"`
}

// PullRequest is the body of POST /sync/pull.
type PullRequest struct {
	// ClientVersion is compared with the stored version to report a conflict.
	ClientVersion int64 `json:"clientVersion"`

	// ClientLastSync is the time of the client's last successful sync, if any.
	ClientLastSync *time.Time `json:"clientLastSync"`
}
