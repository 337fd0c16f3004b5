// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks sync requests, client sync configuration and
// planner snapshots before they reach a service or the local store.
//
// Every validator implements Validator. Callers may pass field names to
// restrict validation to a subset of a struct; with no field names each
// validator checks its default set.
package validators

import "context"

// Validator validates arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
