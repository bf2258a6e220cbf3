// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerConfig_Address(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: 8080}
	assert.Equal(t, "0.0.0.0:8080", s.Address())
}

func TestDefaultConfig_PassesValidation(t *testing.T) {
	cfg := defaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsOutOfRangePort(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsEmptyDatabaseURL(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.URL = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsMaxBelowMinConnections(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.MinConnections = 5
	cfg.Database.MaxConnections = 2
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsMissingOsuCredentials(t *testing.T) {
	cfg := defaultConfig()
	cfg.OsuAPI.ClientID = 0
	assert.Error(t, cfg.Validate())

	cfg2 := defaultConfig()
	cfg2.OsuAPI.ClientSecret = ""
	assert.Error(t, cfg2.Validate())
}

func TestEnvTransform_MapsFlatNamesToDottedPaths(t *testing.T) {
	assert.Equal(t, "server.host", envTransform("SERVER_HOST"))
	assert.Equal(t, "database.max_connections", envTransform("DATABASE_MAX_CONNECTIONS"))
	assert.Equal(t, "osu_api.client_secret", envTransform("OSU_CLIENT_SECRET"))
	assert.Equal(t, "ingest.failed_query_retention", envTransform("FAILED_QUERY_RETENTION"))
}

func TestEnvTransform_PassesThroughUnknownKeys(t *testing.T) {
	assert.Equal(t, "some_unmapped_key", envTransform("SOME_UNMAPPED_KEY"))
}
