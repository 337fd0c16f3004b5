// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// Supported document store backends, selected by DSN scheme.
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Backend reports which document store the DSN selects, or "" when the scheme
// is not supported.
func (db DB) Backend() string {
	switch {
	case strings.HasPrefix(db.DSN, "postgres://"), strings.HasPrefix(db.DSN, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(db.DSN, "mongodb://"), strings.HasPrefix(db.DSN, "mongodb+srv://"):
		return BackendMongo
	default:
		return ""
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup. A missing DSN is fatal:
// every request depends on the document store.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database connection string is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.Backend() == "" {
		return fmt.Errorf("%w: unsupported DSN scheme", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.Backend() == BackendMongo && (cfg.Storage.DB.Name == "" || cfg.Storage.DB.Collection == "") {
		return fmt.Errorf("%w: database and collection names are required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.MaxBodyBytes <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Auth.MinSecretKeyLength <= 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.RateLimit.Window <= 0 || cfg.RateLimit.MaxRequests <= 0 || cfg.RateLimit.CleanupInterval <= 0 {
		return ErrInvalidRateLimitConfigs
	}

	if cfg.Tracing.Enabled {
		switch cfg.Tracing.Exporter {
		case "stdout":
		case "otlp":
			if cfg.Tracing.OTLPEndpoint == "" {
				return fmt.Errorf("%w: otlp endpoint is required", ErrInvalidTracingConfigs)
			}
		default:
			return fmt.Errorf("%w: unknown exporter %q", ErrInvalidTracingConfigs, cfg.Tracing.Exporter)
		}
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.SyncInterval <= 0 || cfg.Sync.DebounceDelay <= 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
