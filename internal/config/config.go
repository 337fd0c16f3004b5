// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the sync
// server and the planner-sync client. It aggregates all sub-configurations and
// is populated by merging built-in defaults with values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the build version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the server document store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and body size settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Auth holds the secret key policy.
	Auth Auth `envPrefix:"AUTH_"`

	// RateLimit holds the fixed-window limiter settings.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Tracing holds OpenTelemetry exporter settings.
	Tracing Tracing `envPrefix:"TRACING_"`

	// Client holds settings used only by the planner-sync client.
	Client Client `envPrefix:"CLIENT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the server document store.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the document store backend.
type DB struct {
	// DSN selects and configures the backend by scheme: postgres:// (or
	// postgresql://) opens PostgreSQL, mongodb:// or mongodb+srv:// opens
	// MongoDB.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// Name is the MongoDB database name. Ignored by PostgreSQL.
	// Env: STORAGE_DB_NAME
	Name string `env:"NAME"`

	// Collection is the MongoDB collection holding sync documents.
	// Env: STORAGE_DB_COLLECTION
	Collection string `env:"COLLECTION"`

	// ConnectTimeout bounds connection establishment and the startup ping.
	// Env: STORAGE_DB_CONNECT_TIMEOUT
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. ":3001").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxBodyBytes caps the size of a request body. Larger bodies are
	// answered with 413.
	// Env: SERVER_MAX_BODY_BYTES
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES"`

	// ShutdownTimeout bounds graceful shutdown after a termination signal.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Auth holds the secret key policy.
type Auth struct {
	// MinSecretKeyLength is the minimal accepted length of x-secret-key.
	// Env: AUTH_MIN_SECRET_KEY_LENGTH
	MinSecretKeyLength int `env:"MIN_SECRET_KEY_LENGTH"`
}

// RateLimit holds fixed-window limiter settings.
type RateLimit struct {
	// Window is the length of one counting window.
	// Env: RATE_LIMIT_WINDOW
	Window time.Duration `env:"WINDOW"`

	// MaxRequests is the number of requests allowed per key per window.
	// Env: RATE_LIMIT_MAX_REQUESTS
	MaxRequests int `env:"MAX_REQUESTS"`

	// CleanupInterval is how often expired windows are evicted.
	// Env: RATE_LIMIT_CLEANUP_INTERVAL
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL"`
}

// Tracing holds OpenTelemetry settings.
type Tracing struct {
	// Enabled turns request tracing on.
	// Env: TRACING_ENABLED
	Enabled bool `env:"ENABLED"`

	// Exporter is either "stdout" or "otlp".
	// Env: TRACING_EXPORTER
	Exporter string `env:"EXPORTER"`

	// OTLPEndpoint is the host:port of the OTLP/HTTP collector.
	// Env: TRACING_OTLP_ENDPOINT
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`

	// ServiceName is reported as the service.name resource attribute.
	// Env: TRACING_SERVICE_NAME
	ServiceName string `env:"SERVICE_NAME"`
}

// Client holds settings of the planner-sync client.
type Client struct {
	// DBPath is the SQLite file holding the settings record and planner data.
	// Env: CLIENT_DB_PATH
	DBPath string `env:"DB_PATH"`

	// LogFile is the rotated log file. Empty means stderr.
	// Env: CLIENT_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// RequestTimeout bounds every outbound sync request.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// DefaultServerURL is written into a freshly created settings record.
	// Env: CLIENT_DEFAULT_SERVER_URL
	DefaultServerURL string `env:"DEFAULT_SERVER_URL"`

	// SyncInterval is the default auto-sync interval of a new settings record.
	// Env: CLIENT_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// DebounceDelay is the quiet period after a local edit before pushing.
	// Env: CLIENT_DEBOUNCE_DELAY
	DebounceDelay time.Duration `env:"DEBOUNCE_DELAY"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags (args, without the program name)
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
