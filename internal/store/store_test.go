// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_ConservativePoolSizing(t *testing.T) {
	cfg := DefaultConfig("postgres://example")
	assert.Equal(t, int32(1), cfg.MinConns)
	assert.Equal(t, int32(10), cfg.MaxConns)
	assert.Equal(t, "postgres://example", cfg.DSN)
}

func TestSchema_DeclaresRequiredTablesAndUniqueConstraints(t *testing.T) {
	for _, table := range []string{"beatmapset", "beatmap", "msd", "pending_beatmap", "failed_query"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.True(t, strings.Contains(schema, "external_catalog_id BIGINT NOT NULL UNIQUE"))
	assert.True(t, strings.Contains(schema, "chart_file_md5    TEXT NOT NULL UNIQUE"))
	assert.True(t, strings.Contains(schema, "UNIQUE (beatmap_id, rate)"))
}
