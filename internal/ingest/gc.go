// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package ingest

import (
	"context"
	"time"

	"github.com/Glubus/osu.osef.me-backend/internal/logging"
)

// DefaultRetention is the default age at which a quarantined hash becomes
// eligible for garbage collection, allowing a transient upstream outage to
// stop permanently blacklisting a chart.
const DefaultRetention = 30 * 24 * time.Hour

// gcSweepInterval is how often the sweep runs.
const gcSweepInterval = time.Hour

// FailedQueryPruner is the subset of store.FailedQueryStore the GC sweep
// depends on.
type FailedQueryPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RunGC periodically deletes failed_query rows older than retention, until
// ctx is cancelled. Intended to run in its own goroutine alongside the
// ingest worker.
func RunGC(ctx context.Context, pruner FailedQueryPruner, retention time.Duration) {
	if retention <= 0 {
		retention = DefaultRetention
	}

	ticker := time.NewTicker(gcSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := timeNow().Add(-retention)
			removed, err := pruner.DeleteOlderThan(ctx, cutoff)
			if err != nil {
				logging.Warn().Err(err).Msg("ingest: failed_query gc sweep failed")
				continue
			}
			if removed > 0 {
				logging.Info().Int64("removed", removed).Msg("ingest: failed_query gc sweep removed rows")
			}
		}
	}
}

// timeNow is a seam for testing the cutoff computation.
var timeNow = time.Now
