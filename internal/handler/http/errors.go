// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport layer itself. errorStatusMap turns
// them into a status code and the message sent to the client.
var (
	// errInvalidSecretKey is returned when x-secret-key is absent or shorter
	// than the configured minimum.
	errInvalidSecretKey = errors.New("invalid or missing secret key")

	// errTooManyRequests is returned when a key exceeds its rate window.
	errTooManyRequests = errors.New("too many requests")

	// errInvalidJSON is returned when a request body cannot be decoded.
	errInvalidJSON = errors.New("invalid JSON")

	// errBodyTooLarge is returned when a body exceeds the configured limit.
	errBodyTooLarge = errors.New("request body too large")

	// errRouteNotFound answers unknown routes and unsupported methods.
	errRouteNotFound = errors.New("not found")

	// errInvalidGzip is returned when a gzip-encoded body cannot be read.
	errInvalidGzip = errors.New("invalid gzip data")
)
