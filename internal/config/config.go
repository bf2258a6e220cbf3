// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

// Package config loads the service's configuration from layered sources —
// built-in defaults, an optional YAML file, then environment variables —
// using koanf, the same precedence order and provider chain used
// elsewhere in this codebase's ancestry.
package config

import (
	"strconv"
	"time"
)

// ServerConfig is the HTTP listener's bind address.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// Address returns the host:port pair net/http expects.
func (s ServerConfig) Address() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// DatabaseConfig is the Postgres connection and pool sizing.
type DatabaseConfig struct {
	URL            string `koanf:"url"`
	MaxConnections int    `koanf:"max_connections"`
	MinConnections int    `koanf:"min_connections"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// CorsConfig is the allowed-origins/methods/headers triple the API's CORS
// middleware is built from.
type CorsConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
	AllowedMethods []string `koanf:"allowed_methods"`
	AllowedHeaders []string `koanf:"allowed_headers"`
}

// OsuApiConfig is the OAuth client credentials used against the external
// catalog's metadata API.
type OsuApiConfig struct {
	ClientID     int64  `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
}

// IngestConfig tunes the ingest worker's garbage collection of stale
// quarantine entries.
type IngestConfig struct {
	FailedQueryRetention time.Duration `koanf:"failed_query_retention"`
}

// Config is the fully-resolved configuration for one process.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Logging  LoggingConfig  `koanf:"logging"`
	Cors     CorsConfig     `koanf:"cors"`
	OsuAPI   OsuApiConfig   `koanf:"osu_api"`
	Ingest   IngestConfig   `koanf:"ingest"`
}
