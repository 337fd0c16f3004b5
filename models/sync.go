package models

import "time"

// SyncDocument is the server-side record stored for one secret key.
//
// SecretKey is the partition key: it identifies zero or one document.
// Version starts at 1 on the first push and grows by exactly 1 on every
// later push. Deleting a document removes it entirely.
type SyncDocument struct {
	SecretKey string    `json:"-"`
	Content   Snapshot  `json:"data"`
	Version   int64     `json:"version"`
	LastSync  time.Time `json:"lastSync"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PushResultDocument is what the store reports back after a successful push.
type PushResultDocument struct {
	Version  int64
	LastSync time.Time
	// Created is true when the push bootstrapped a new document (version 1).
	Created bool
}
