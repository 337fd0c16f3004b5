package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] and
// [ClientConfig.validate] when required configuration groups are incomplete
// or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or an unsupported DSN scheme).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAuthConfigs indicates a non-positive minimal key length.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidRateLimitConfigs indicates a non-positive window or cap.
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
	// ErrInvalidTracingConfigs indicates an unknown exporter or a missing
	// OTLP endpoint.
	ErrInvalidTracingConfigs = errors.New("invalid tracing configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, zero request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidSyncConfigs indicates invalid client scheduling settings
	// (for example, zero debounce delay).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
)
