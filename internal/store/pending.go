// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Glubus/osu.osef.me-backend/internal/models"
)

// PendingBeatmapStore is the durable admission queue (pending_beatmap). The
// queue façade (C6) is a thin wrapper over this store; there is no in-memory
// queue anywhere in the pipeline.
type PendingBeatmapStore struct {
	pool *pgxpool.Pool
}

// Insert admits a single hash. ON CONFLICT(hash) DO NOTHING absorbs a hash
// already queued; the returned id is 0 when that happens.
func (s *PendingBeatmapStore) Insert(ctx context.Context, hash string) (int64, error) {
	const query = `
		INSERT INTO pending_beatmap (hash) VALUES ($1)
		ON CONFLICT (hash) DO NOTHING
		RETURNING id`

	var id int64
	err := s.pool.QueryRow(ctx, query, hash).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("store: insert pending beatmap: %w", err)
	}
	return id, nil
}

// BulkInsert admits a batch of hashes in one round-trip via pgx.Batch,
// returning the count of rows actually inserted (hashes already queued are
// silently absorbed and do not count).
func (s *PendingBeatmapStore) BulkInsert(ctx context.Context, hashes []string) (int, error) {
	if len(hashes) == 0 {
		return 0, nil
	}

	const query = `
		INSERT INTO pending_beatmap (hash) VALUES ($1)
		ON CONFLICT (hash) DO NOTHING`

	batch := &pgx.Batch{}
	for _, h := range hashes {
		batch.Queue(query, h)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range hashes {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("store: bulk insert pending beatmap: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// Oldest returns the pending row with the minimal (created_at, id)
// lexicographic order, or nil if the queue is empty.
func (s *PendingBeatmapStore) Oldest(ctx context.Context) (*models.PendingBeatmap, error) {
	const query = `
		SELECT id, hash, created_at
		FROM pending_beatmap
		ORDER BY created_at ASC, id ASC
		LIMIT 1`

	var p models.PendingBeatmap
	err := s.pool.QueryRow(ctx, query).Scan(&p.ID, &p.Hash, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("store: oldest pending beatmap: %w", err)
	}
	return &p, nil
}

// DeleteByID removes a row by surrogate id. Idempotent: deleting an id that
// no longer exists returns rows-affected 0, not an error.
func (s *PendingBeatmapStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM pending_beatmap WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("store: delete pending beatmap by id: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByHash removes a row by hash. Idempotent, same semantics as
// DeleteByID.
func (s *PendingBeatmapStore) DeleteByHash(ctx context.Context, hash string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM pending_beatmap WHERE hash = $1`, hash)
	if err != nil {
		return 0, fmt.Errorf("store: delete pending beatmap by hash: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ExistsByHash reports whether hash is currently queued, used by the
// status endpoint to distinguish "pending" from "unknown".
func (s *PendingBeatmapStore) ExistsByHash(ctx context.Context, hash string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM pending_beatmap WHERE hash = $1)`, hash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("store: exists pending beatmap by hash: %w", err)
	}
	return exists, nil
}
