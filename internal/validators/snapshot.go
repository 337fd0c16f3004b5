// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/MKhiriev/planner-sync/models"
)

const snapshotSchemaURL = "planner_snapshot.json"

//go:embed schema/planner_snapshot.json
var snapshotSchema []byte

// SnapshotValidator checks that a snapshot has the planner layout
// ({columns, calendar, settings, weeks, exportDate, version}) before it is
// imported over the local dataset. Unknown top-level keys are allowed.
type SnapshotValidator struct {
	schema *jsonschema.Schema
}

// NewSnapshotValidator compiles the embedded planner snapshot schema.
func NewSnapshotValidator() (Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(snapshotSchemaURL, bytes.NewReader(snapshotSchema)); err != nil {
		return nil, fmt.Errorf("add snapshot schema resource: %w", err)
	}
	schema, err := compiler.Compile(snapshotSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}

	return &SnapshotValidator{schema: schema}, nil
}

// Validate accepts models.Snapshot or *models.Snapshot. Field scoping is not
// supported.
func (v *SnapshotValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	if len(fields) > 0 {
		return ErrUnknownField
	}

	switch value := obj.(type) {
	case models.Snapshot:
		return v.validateSnapshot(value)
	case *models.Snapshot:
		return v.validateSnapshot(*value)
	default:
		return ErrUnsupportedType
	}
}

func (v *SnapshotValidator) validateSnapshot(s models.Snapshot) error {
	if v.schema == nil {
		return ErrSnapshotSchemaMissing
	}
	if s.IsEmpty() {
		return ErrEmptyData
	}

	var instance any
	if err := json.Unmarshal(s, &instance); err != nil {
		return ErrInvalidData
	}
	if err := v.schema.Validate(instance); err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotShape, err)
	}

	return nil
}
