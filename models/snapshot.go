// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Snapshot is a full, opaque serialization of the local planner dataset
// (calendar, table columns, settings) taken at one instant.
//
// The sync layer never looks inside a Snapshot: it is produced by the
// snapshot provider, carried over the wire as raw JSON, stored by the server
// as-is and handed back to the provider on merge. A Snapshot is always a
// complete replacement, never a partial delta.
type Snapshot []byte

// MarshalJSON returns s as raw JSON. An empty snapshot is encoded as null.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return jsonNull, nil
	}
	if !json.Valid(s) {
		return nil, ErrInvalidSnapshot
	}

	return s, nil
}

// UnmarshalJSON stores a copy of data in s.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if s == nil {
		return ErrInvalidSnapshot
	}
	*s = append((*s)[0:0], data...)
	return nil
}

// IsEmpty reports whether s carries no data at all (absent or JSON null).
func (s Snapshot) IsEmpty() bool {
	trimmed := bytes.TrimSpace(s)
	return len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull)
}

// Valid reports whether s is well-formed, non-empty JSON.
func (s Snapshot) Valid() bool {
	return !s.IsEmpty() && json.Valid(s)
}
