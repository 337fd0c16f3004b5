// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"

	"github.com/caarlos0/env/v11"
)

// hostingEnv holds the unprefixed variables set by PaaS hosts and by
// existing deployments of the sync server.
type hostingEnv struct {
	// Port is the listen port assigned by the host.
	Port string `env:"PORT"`
	// MongoURI and MongoURIAlias name the MongoDB connection string.
	MongoURI      string `env:"MONGODB_URI"`
	MongoURIAlias string `env:"MONGO_URI"`
}

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// PORT and MONGODB_URI (or MONGO_URI) fill the listen address and the
// database DSN when SERVER_ADDRESS and STORAGE_DB_DATABASE_URI are unset.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	var hosting hostingEnv
	if err := env.Parse(&hosting); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if cfg.Server.HTTPAddress == "" && hosting.Port != "" {
		cfg.Server.HTTPAddress = net.JoinHostPort("", hosting.Port)
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = hosting.MongoURI
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = hosting.MongoURIAlias
	}

	return nil
}
