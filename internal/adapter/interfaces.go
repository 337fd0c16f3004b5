// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the sync wire protocol.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// sync services from HTTP. The server URL and secret key are passed on every
// call because both live in the user-editable settings record and may change
// between two calls.
//
// Non-2xx answers are mapped to the sentinel errors in errors.go by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrUnauthorized]
// for 401, [ErrTooManyRequests] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/planner-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to one planner sync server.
type ServerAdapter interface {
	// Health calls GET /health. It needs no secret key.
	Health(ctx context.Context, serverURL string) (models.HealthResponse, error)

	// GetData calls GET /sync/data and returns the latest stored snapshot.
	GetData(ctx context.Context, serverURL, secretKey string) (models.DataResponse, error)

	// Push calls POST /sync/push with a full snapshot and returns the version
	// assigned by the server.
	Push(ctx context.Context, serverURL, secretKey string, req models.PushRequest) (models.PushResponse, error)

	// Pull calls POST /sync/pull and returns the stored snapshot together
	// with the server's conflict verdict.
	Pull(ctx context.Context, serverURL, secretKey string, req models.PullRequest) (models.PullResponse, error)

	// Delete calls DELETE /sync/data.
	Delete(ctx context.Context, serverURL, secretKey string) (models.DeleteResponse, error)
}
