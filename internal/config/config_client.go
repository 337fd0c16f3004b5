package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	Version string
}

// ClientAdapter holds settings used by the client transport layer.
type ClientAdapter struct {
	// RequestTimeout is the timeout of every outbound sync request.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientSync contains scheduling defaults.
type ClientSync struct {
	// DefaultServerURL seeds a freshly created settings record.
	DefaultServerURL string
	// SyncInterval seeds the auto-sync interval of a new settings record.
	SyncInterval time.Duration
	// DebounceDelay is the quiet period after a local edit.
	DebounceDelay time.Duration
	// MinSecretKeyLength mirrors the server's secret key policy so that a
	// short key is rejected before it is saved.
	MinSecretKeyLength int
}

// ClientLog contains the log destination.
type ClientLog struct {
	// File is the rotated log file path; empty means stdout.
	File string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Log     ClientLog
}

// GetClientConfig builds and validates a client-specific config view.
//
// Sources are merged as defaults, env, JSON file, then overrides (the
// cobra persistent flags), so explicit command-line values always win.
// Server-only invariants are not checked.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		with(overrides).
		withJSON().
		with(overrides).
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{Version: cfg.App.Version},
		Adapter: ClientAdapter{
			RequestTimeout: cfg.Client.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Client.DBPath},
		},
		Sync: ClientSync{
			DefaultServerURL: cfg.Client.DefaultServerURL,
			SyncInterval:     cfg.Client.SyncInterval,
			DebounceDelay:    cfg.Client.DebounceDelay,

			MinSecretKeyLength: cfg.Auth.MinSecretKeyLength,
		},
		Log: ClientLog{File: cfg.Client.LogFile},
	}

	return clientCfg, clientCfg.validate()
}
