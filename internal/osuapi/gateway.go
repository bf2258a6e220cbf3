// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package osuapi

import "context"

// Gateway is the C4 contract the ingest worker depends on. Both Client and
// CircuitBreakerClient satisfy it; tests substitute an in-memory fake.
type Gateway interface {
	BeatmapByChecksum(ctx context.Context, checksum string) (*BeatmapExtended, error)
	BeatmapByOsuID(ctx context.Context, id int64) (*BeatmapExtended, error)
}

var (
	_ Gateway = (*Client)(nil)
	_ Gateway = (*CircuitBreakerClient)(nil)
)
