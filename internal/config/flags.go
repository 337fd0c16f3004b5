package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses server configuration flags from args (without the
// program name).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (postgres:// or mongodb://)
//	-db-name MongoDB database name
//	-db-collection MongoDB collection name
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-max-body-bytes request body limit in bytes
//	-min-key-length minimal secret key length
//	-rate-limit-window rate limit window (e.g., "1m")
//	-rate-limit-max requests allowed per window
//	-tracing enable OpenTelemetry tracing
//	-tracing-exporter stdout or otlp
//	-tracing-endpoint OTLP/HTTP collector host:port
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN, dbName, dbCollection string
	var jsonConfigPath string
	var requestTimeout, rateLimitWindow time.Duration
	var maxBodyBytes int64
	var minKeyLength, rateLimitMax int
	var tracingEnabled bool
	var tracingExporter, tracingEndpoint string

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&dbName, "db-name", "", "MongoDB database name")
	fs.StringVar(&dbCollection, "db-collection", "", "MongoDB collection name")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Int64Var(&maxBodyBytes, "max-body-bytes", 0, "Request body limit in bytes")
	fs.IntVar(&minKeyLength, "min-key-length", 0, "Minimal secret key length")
	fs.DurationVar(&rateLimitWindow, "rate-limit-window", 0, "Rate limit window (e.g., 1m)")
	fs.IntVar(&rateLimitMax, "rate-limit-max", 0, "Requests allowed per window")
	fs.BoolVar(&tracingEnabled, "tracing", false, "Enable tracing")
	fs.StringVar(&tracingExporter, "tracing-exporter", "", "Tracing exporter: stdout or otlp")
	fs.StringVar(&tracingEndpoint, "tracing-endpoint", "", "OTLP collector host:port")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				DSN:        databaseDSN,
				Name:       dbName,
				Collection: dbCollection,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			MaxBodyBytes:   maxBodyBytes,
		},
		Auth: Auth{MinSecretKeyLength: minKeyLength},
		RateLimit: RateLimit{
			Window:      rateLimitWindow,
			MaxRequests: rateLimitMax,
		},
		Tracing: Tracing{
			Enabled:      tracingEnabled,
			Exporter:     tracingExporter,
			OTLPEndpoint: tracingEndpoint,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string so the
// configured default stays in effect.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form [host]:port and populates the
// NetAddress. An empty host means all interfaces.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
