// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

// Package queue is the pending-beatmap admission façade (C6): a thin layer
// over the durable pending_beatmap table. There is no in-memory queue
// anywhere in the ingest pipeline — admission always goes through the
// database, which is the only durable admission point.
package queue

import (
	"context"

	"github.com/Glubus/osu.osef.me-backend/internal/models"
)

// maxBatchSize caps a single admission call. Callers asking to queue more
// than this in one request have the excess silently dropped; this bounds
// the worst case a single HTTP request can enqueue.
const maxBatchSize = 50

// PendingStore is the subset of store.PendingBeatmapStore the queue façade
// depends on, named here so tests can substitute an in-memory fake instead
// of a live database.
type PendingStore interface {
	BulkInsert(ctx context.Context, hashes []string) (int, error)
	Oldest(ctx context.Context) (*models.PendingBeatmap, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// Queue wraps a PendingStore with the admission batch cap and the
// take/commit vocabulary the ingest worker uses.
type Queue struct {
	store PendingStore
}

// New constructs a Queue over the given pending-beatmap store.
func New(store PendingStore) *Queue {
	return &Queue{store: store}
}

// AddHashes truncates the batch to the first 50 entries, then bulk-upserts.
// Hashes already queued are silently absorbed; the return value is the
// count of genuinely new rows.
func (q *Queue) AddHashes(ctx context.Context, hashes []string) (int, error) {
	if len(hashes) > maxBatchSize {
		hashes = hashes[:maxBatchSize]
	}
	return q.store.BulkInsert(ctx, hashes)
}

// TakeOne atomically reads the oldest pending row, or nil if the queue is
// empty.
func (q *Queue) TakeOne(ctx context.Context) (*models.PendingBeatmap, error) {
	return q.store.Oldest(ctx)
}

// Remove commits an iteration by deleting its row by surrogate id.
func (q *Queue) Remove(ctx context.Context, id int64) error {
	_, err := q.store.DeleteByID(ctx, id)
	return err
}
