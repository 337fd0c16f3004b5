package config

import "time"

// Built-in defaults shared by the server and the client.
const (
	DefaultHTTPAddress        = ":3001"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultMaxBodyBytes       = 10 << 20
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultDBName             = "onda-sync"
	DefaultCollection         = "sync-data"
	DefaultConnectTimeout     = 10 * time.Second
	DefaultMinSecretKeyLength = 8
	DefaultRateLimitWindow    = time.Minute
	DefaultRateLimitMax       = 60
	DefaultCleanupInterval    = 5 * time.Minute
	DefaultTracingExporter    = "stdout"
	DefaultServiceName        = "planner-sync-server"

	DefaultClientDBPath        = "planner.db"
	DefaultClientServerURL     = "https://onda-39t4.onrender.com"
	DefaultClientSyncInterval  = 5 * time.Minute
	DefaultClientDebounceDelay = 2 * time.Second
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				Name:           DefaultDBName,
				Collection:     DefaultCollection,
				ConnectTimeout: DefaultConnectTimeout,
			},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			MaxBodyBytes:    DefaultMaxBodyBytes,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Auth: Auth{
			MinSecretKeyLength: DefaultMinSecretKeyLength,
		},
		RateLimit: RateLimit{
			Window:          DefaultRateLimitWindow,
			MaxRequests:     DefaultRateLimitMax,
			CleanupInterval: DefaultCleanupInterval,
		},
		Tracing: Tracing{
			Exporter:    DefaultTracingExporter,
			ServiceName: DefaultServiceName,
		},
		Client: Client{
			DBPath:           DefaultClientDBPath,
			RequestTimeout:   DefaultRequestTimeout,
			DefaultServerURL: DefaultClientServerURL,
			SyncInterval:     DefaultClientSyncInterval,
			DebounceDelay:    DefaultClientDebounceDelay,
		},
	}
}
