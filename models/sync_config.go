// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncConfig is the client-persisted sync configuration together with the
// last known server version and sync time.
type SyncConfig struct {
	Enabled      bool          `json:"enabled"`
	ServerURL    string        `json:"serverUrl"`
	SecretKey    string        `json:"secretKey"`
	AutoSync     bool          `json:"autoSync"`
	SyncInterval time.Duration `json:"syncInterval"`

	// Version and LastSync are stamped by the client after every successful
	// push or merge so that a restarted client resumes from them.
	Version  int64      `json:"version"`
	LastSync *time.Time `json:"lastSync,omitempty"`

	// SyncedRevision is the local edit revision carried by the last
	// successful push. A higher local revision at startup means edits were
	// made while no sync was running.
	SyncedRevision int64 `json:"syncedRevision"`
}

// SyncConfigUpdate is a partial SyncConfig: only non-nil fields are applied.
type SyncConfigUpdate struct {
	Enabled      *bool
	ServerURL    *string
	SecretKey    *string
	AutoSync     *bool
	SyncInterval *time.Duration

	// SyncedRevision is bookkeeping written after a push, not a user field.
	SyncedRevision *int64
}

// IsEmpty reports whether the update changes no user-editable field.
func (u SyncConfigUpdate) IsEmpty() bool {
	return u.Enabled == nil && u.ServerURL == nil && u.SecretKey == nil &&
		u.AutoSync == nil && u.SyncInterval == nil
}

// SyncStatus is a read-only view composed from SyncConfig and the runtime
// sync state. It is never stored.
type SyncStatus struct {
	Enabled        bool       `json:"enabled"`
	Syncing        bool       `json:"syncing"`
	Version        int64      `json:"version"`
	LastSync       *time.Time `json:"lastSync,omitempty"`
	AutoSyncActive bool       `json:"autoSyncActive"`
	HasLocalChange bool       `json:"hasLocalChanges"`
}
