// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package osuapi

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Glubus/osu.osef.me-backend/internal/logging"
)

// CircuitBreakerClient wraps Client with a circuit breaker so a degraded
// upstream catalog fails ingest iterations fast instead of piling up
// blocked HTTP calls behind the single-threaded worker.
//
// Configuration mirrors a conservative external-dependency breaker: 3
// concurrent probes while half-open, a 1 minute closed-state measurement
// window, a 2 minute open-state cool-down, and a trip threshold of 60%
// failures with a minimum of 10 requests for statistical significance.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[*BeatmapExtended]
}

// NewCircuitBreakerClient wraps an already-constructed Client. Constructed
// exactly once at process start alongside Client itself.
func NewCircuitBreakerClient(client *Client) *CircuitBreakerClient {
	cb := gobreaker.NewCircuitBreaker[*BeatmapExtended](gobreaker.Settings{
		Name:        "osu-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("osu api circuit breaker state transition")
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb}
}

// BeatmapByChecksum resolves a chart MD5 through the circuit breaker.
func (c *CircuitBreakerClient) BeatmapByChecksum(ctx context.Context, checksum string) (*BeatmapExtended, error) {
	return c.cb.Execute(func() (*BeatmapExtended, error) {
		return c.client.BeatmapByChecksum(ctx, checksum)
	})
}

// BeatmapByOsuID resolves an upstream numeric id through the circuit breaker.
func (c *CircuitBreakerClient) BeatmapByOsuID(ctx context.Context, id int64) (*BeatmapExtended, error) {
	return c.cb.Execute(func() (*BeatmapExtended, error) {
		return c.client.BeatmapByOsuID(ctx, id)
	})
}
