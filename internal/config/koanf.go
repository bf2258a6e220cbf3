// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for an optional config file,
// in priority order. The first one found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/osef/config.yaml",
	"/etc/osef/config.yml",
}

// ConfigPathEnvVar overrides the search list with a single explicit path.
const ConfigPathEnvVar = "CONFIG_PATH"

// sliceEnvPaths lists the koanf paths populated from comma-separated
// environment variables. A YAML file already expresses these natively as
// lists, so only the env layer needs the split.
var sliceEnvPaths = []string{
	"cors.allowed_origins",
	"cors.allowed_methods",
	"cors.allowed_headers",
}

// envMappings translates the flat environment variable names from
// spec.md's configuration surface into koanf's dotted struct paths.
var envMappings = map[string]string{
	"server_host":              "server.host",
	"server_port":              "server.port",
	"database_url":             "database.url",
	"database_max_connections": "database.max_connections",
	"database_min_connections": "database.min_connections",
	"log_level":                "logging.level",
	"log_format":               "logging.format",
	"cors_allowed_origins":     "cors.allowed_origins",
	"cors_allowed_methods":     "cors.allowed_methods",
	"cors_allowed_headers":     "cors.allowed_headers",
	"osu_client_id":            "osu_api.client_id",
	"osu_client_secret":        "osu_api.client_secret",
	"failed_query_retention":   "ingest.failed_query_retention",
}

func envTransform(key string) string {
	key = strings.ToLower(key)
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return key
}

// Load resolves the process configuration by layering, in increasing
// priority: built-in defaults, an optional YAML file, then environment
// variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	if err := splitSliceEnvValues(k); err != nil {
		return nil, fmt.Errorf("config: split slice values: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitSliceEnvValues converts a comma-separated string left by the
// environment provider into the string slice the struct field expects; a
// value already loaded as a slice (from the YAML layer) is left alone.
func splitSliceEnvValues(k *koanf.Koanf) error {
	for _, path := range sliceEnvPaths {
		val := k.Get(path)
		str, ok := val.(string)
		if !ok || str == "" {
			continue
		}
		parts := strings.Split(str, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return err
		}
	}
	return nil
}
