// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package config

import "fmt"

// Validate rejects configurations that would otherwise fail much later,
// deep inside pool construction or the OAuth handshake, with a less
// actionable error.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("config: database.url is required")
	}
	if c.Database.MinConnections < 0 {
		return fmt.Errorf("config: database.min_connections must be >= 0")
	}
	if c.Database.MaxConnections < c.Database.MinConnections {
		return fmt.Errorf("config: database.max_connections must be >= min_connections")
	}
	if c.OsuAPI.ClientID <= 0 {
		return fmt.Errorf("config: osu_api.client_id is required")
	}
	if c.OsuAPI.ClientSecret == "" {
		return fmt.Errorf("config: osu_api.client_secret is required")
	}
	return nil
}
