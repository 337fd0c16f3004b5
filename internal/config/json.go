package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN            string   `json:"dsn"`
			Name           string   `json:"name"`
			Collection     string   `json:"collection"`
			ConnectTimeout Duration `json:"connect_timeout"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		MaxBodyBytes    int64    `json:"max_body_bytes"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Auth struct {
		MinSecretKeyLength int `json:"min_secret_key_length"`
	} `json:"auth,omitempty"`

	RateLimit struct {
		Window          Duration `json:"window"`
		MaxRequests     int      `json:"max_requests"`
		CleanupInterval Duration `json:"cleanup_interval"`
	} `json:"rate_limit,omitempty"`

	Tracing struct {
		Enabled      bool   `json:"enabled"`
		Exporter     string `json:"exporter"`
		OTLPEndpoint string `json:"otlp_endpoint"`
		ServiceName  string `json:"service_name"`
	} `json:"tracing,omitempty"`

	Client struct {
		DBPath           string   `json:"db_path"`
		LogFile          string   `json:"log_file"`
		RequestTimeout   Duration `json:"request_timeout"`
		DefaultServerURL string   `json:"default_server_url"`
		SyncInterval     Duration `json:"sync_interval"`
		DebounceDelay    Duration `json:"debounce_delay"`
	} `json:"client,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{Version: jsonCfg.App.Version},
		Storage: Storage{
			DB: DB{
				DSN:            jsonCfg.Storage.DB.DSN,
				Name:           jsonCfg.Storage.DB.Name,
				Collection:     jsonCfg.Storage.DB.Collection,
				ConnectTimeout: time.Duration(jsonCfg.Storage.DB.ConnectTimeout),
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			MaxBodyBytes:    jsonCfg.Server.MaxBodyBytes,
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Auth: Auth{MinSecretKeyLength: jsonCfg.Auth.MinSecretKeyLength},
		RateLimit: RateLimit{
			Window:          time.Duration(jsonCfg.RateLimit.Window),
			MaxRequests:     jsonCfg.RateLimit.MaxRequests,
			CleanupInterval: time.Duration(jsonCfg.RateLimit.CleanupInterval),
		},
		Tracing: Tracing{
			Enabled:      jsonCfg.Tracing.Enabled,
			Exporter:     jsonCfg.Tracing.Exporter,
			OTLPEndpoint: jsonCfg.Tracing.OTLPEndpoint,
			ServiceName:  jsonCfg.Tracing.ServiceName,
		},
		Client: Client{
			DBPath:           jsonCfg.Client.DBPath,
			LogFile:          jsonCfg.Client.LogFile,
			RequestTimeout:   time.Duration(jsonCfg.Client.RequestTimeout),
			DefaultServerURL: jsonCfg.Client.DefaultServerURL,
			SyncInterval:     time.Duration(jsonCfg.Client.SyncInterval),
			DebounceDelay:    time.Duration(jsonCfg.Client.DebounceDelay),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" and from plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
