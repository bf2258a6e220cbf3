// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package api

import "context"

// pendingExister, beatmapExister and failedExister are narrow views over
// the corresponding store types — each exposes an ExistsByHash or
// ExistsByChecksum method, which collide if embedded directly into one
// struct, hence the distinct interface+field names below.
type pendingExister interface {
	ExistsByHash(ctx context.Context, hash string) (bool, error)
}

type beatmapExister interface {
	ExistsByChecksum(ctx context.Context, checksum string) (bool, error)
}

type failedExister interface {
	ExistsByHash(ctx context.Context, hash string) (bool, error)
}

// StatusLookup adapts the three independent store existence checks into
// the single PendingLookup interface the status handler depends on.
type StatusLookup struct {
	Pending  pendingExister
	Beatmaps beatmapExister
	Failed   failedExister
}

func NewStatusLookup(pending pendingExister, beatmaps beatmapExister, failed failedExister) *StatusLookup {
	return &StatusLookup{Pending: pending, Beatmaps: beatmaps, Failed: failed}
}

func (s *StatusLookup) PendingExistsByHash(ctx context.Context, hash string) (bool, error) {
	return s.Pending.ExistsByHash(ctx, hash)
}

func (s *StatusLookup) BeatmapExistsByChecksum(ctx context.Context, checksum string) (bool, error) {
	return s.Beatmaps.ExistsByChecksum(ctx, checksum)
}

func (s *StatusLookup) FailedExistsByHash(ctx context.Context, hash string) (bool, error) {
	return s.Failed.ExistsByHash(ctx, hash)
}
