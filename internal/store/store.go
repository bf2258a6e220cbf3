// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

// Package store is the persistence layer (C5): typed CRUD and conditional
// upsert operations over a Postgres schema of five tables — beatmapset,
// beatmap, msd, pending_beatmap, failed_query — backing the ingest worker
// and the query engine. All access goes through a single shared pgxpool.Pool;
// the ingest worker and the HTTP handlers are concurrent callers of it.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the shared connection pool. MinConns/MaxConns follow
// spec's recommended default range of 1-10 for the combined
// worker+handler workload.
type Config struct {
	DSN         string
	MinConns    int32
	MaxConns    int32
	MaxConnIdle time.Duration
}

// DefaultConfig returns conservative pool sizing suitable for a single
// ingest worker plus a modest HTTP handler concurrency.
func DefaultConfig(dsn string) Config {
	return Config{
		DSN:         dsn,
		MinConns:    1,
		MaxConns:    10,
		MaxConnIdle: 5 * time.Minute,
	}
}

// Store bundles the shared pool with one repository per entity. Constructed
// once at process start; handlers and the ingest worker each hold a
// reference to the sub-store they need.
type Store struct {
	pool *pgxpool.Pool

	Beatmapsets     *BeatmapsetStore
	Beatmaps        *BeatmapStore
	MSDs            *MSDStore
	PendingBeatmaps *PendingBeatmapStore
	FailedQueries   *FailedQueryStore
}

// Open establishes the pool and runs the schema migration. Callers are
// expected to call Close on graceful shutdown once the ingest worker has
// finished its in-flight iteration.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("store: parse dsn: %w", err)
	}
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConns = cfg.MaxConns
	if cfg.MaxConnIdle > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdle
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("store: open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return &Store{
		pool:            pool,
		Beatmapsets:     &BeatmapsetStore{pool: pool},
		Beatmaps:        &BeatmapStore{pool: pool},
		MSDs:            &MSDStore{pool: pool},
		PendingBeatmaps: &PendingBeatmapStore{pool: pool},
		FailedQueries:   &FailedQueryStore{pool: pool},
	}, nil
}

// Pool exposes the underlying connection pool for the query engine, which
// builds its own dynamic SQL rather than going through a per-entity
// repository.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close releases the pool. Safe to call once, after the ingest worker has
// finished its current iteration.
func (s *Store) Close() {
	s.pool.Close()
}
