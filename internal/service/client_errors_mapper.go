// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/MKhiriev/planner-sync/internal/adapter"
)

// Client-facing messages of the sync operations.
const (
	MsgInvalidSecretKey     = "Invalid secret key (must be at least 8 characters)"
	MsgServerNotResponding  = "Server not responding"
	MsgConnectionSuccessful = "Connection successful"
	MsgDataMerged           = "Data merged successfully"
	MsgConfigSaved          = "Sync config saved"
	MsgSettingsNotFound     = "Settings not found"
	MsgSyncNotConfigured    = "Sync not configured. Please set server URL and secret key."
	MsgSyncInProgress       = "Sync already in progress"
	MsgSyncSucceeded        = "Sync completed successfully"
	MsgRequestTimedOut      = "Request timed out"
)

// describeAdapterError turns a transport error into the message shown to
// the user. Configuration problems get actionable wording so they can be
// told apart from server downtime.
func describeAdapterError(err error) string {
	if err == nil {
		return ""
	}

	var (
		rateLimitErr *adapter.RateLimitError
		netErr       net.Error
	)
	switch {
	case errors.As(err, &rateLimitErr):
		return fmt.Sprintf("Too many requests, retry in %ds", rateLimitErr.RetryAfter)
	case errors.Is(err, adapter.ErrUnauthorized):
		return MsgInvalidSecretKey
	case errors.Is(err, adapter.ErrEmptyServerURL), errors.Is(err, adapter.ErrInvalidServerURL):
		return MsgSyncNotConfigured
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return MsgRequestTimedOut
	}

	return err.Error()
}
