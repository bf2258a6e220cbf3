// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FailedQueryStore is the quarantine table: fingerprints whose ingest
// attempt reached a terminal failure, short-circuiting future re-attempts
// at the classify step.
type FailedQueryStore struct {
	pool *pgxpool.Pool
}

// ExistsByHash reports whether a hash is already quarantined.
func (s *FailedQueryStore) ExistsByHash(ctx context.Context, hash string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM failed_query WHERE hash = $1)`
	var exists bool
	if err := s.pool.QueryRow(ctx, query, hash).Scan(&exists); err != nil {
		return false, fmt.Errorf("store: failed query exists by hash: %w", err)
	}
	return exists, nil
}

// Insert quarantines a hash. A hash already quarantined is silently
// absorbed rather than treated as an error, since FailTerminal may be
// reached more than once for the same fingerprint across worker restarts.
func (s *FailedQueryStore) Insert(ctx context.Context, hash string) error {
	const query = `
		INSERT INTO failed_query (hash) VALUES ($1)
		ON CONFLICT (hash) DO NOTHING`
	if _, err := s.pool.Exec(ctx, query, hash); err != nil {
		return fmt.Errorf("store: insert failed query: %w", err)
	}
	return nil
}

// DeleteOlderThan removes quarantine rows created before cutoff, returning
// the count removed. This is the garbage-collection sweep that keeps a
// transient upstream outage from permanently blacklisting a chart.
func (s *FailedQueryStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM failed_query WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("store: delete failed queries older than cutoff: %w", err)
	}
	return tag.RowsAffected(), nil
}
