// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Glubus/osu.osef.me-backend/internal/models"
)

// BeatmapStore is the typed CRUD surface over the beatmap table.
type BeatmapStore struct {
	pool *pgxpool.Pool
}

// ExistsByChecksum reports whether a beatmap with this chart MD5 is already
// persisted. The ingest worker's classify step calls this before fetching
// metadata, so a chart already ingested is skipped rather than re-fetched.
func (s *BeatmapStore) ExistsByChecksum(ctx context.Context, checksum string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM beatmap WHERE chart_file_md5 = $1)`
	var exists bool
	if err := s.pool.QueryRow(ctx, query, checksum).Scan(&exists); err != nil {
		return false, fmt.Errorf("store: beatmap exists by checksum: %w", err)
	}
	return exists, nil
}

// Insert performs a straight insert. Callers must have already confirmed
// via ExistsByChecksum that the chart MD5 is not already present; Insert
// itself does not de-duplicate.
func (s *BeatmapStore) Insert(ctx context.Context, b models.Beatmap) (int64, error) {
	const query = `
		INSERT INTO beatmap (
			external_id, beatmapset_id, difficulty, difficulty_rating,
			circle_count, slider_count, spinner_count, max_combo,
			drain_time, total_time, bpm, cs, ar, od, hp, mode, status,
			chart_file_md5, chart_file_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id`

	var id int64
	err := s.pool.QueryRow(ctx, query,
		b.ExternalID, b.BeatmapsetID, b.Difficulty, b.DifficultyRating,
		b.CircleCount, b.SliderCount, b.SpinnerCount, b.MaxCombo,
		b.DrainTime, b.TotalTime, b.BPM, b.CS, b.AR, b.OD, b.HP, b.Mode, b.Status,
		b.ChartFileMD5, b.ChartFileURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: insert beatmap: %w", err)
	}
	return id, nil
}

// ByBeatmapsetID fetches every child beatmap of a set, in insertion order,
// for the by-id detail query mode.
func (s *BeatmapStore) ByBeatmapsetID(ctx context.Context, beatmapsetID int64) ([]models.Beatmap, error) {
	const query = `
		SELECT id, external_id, beatmapset_id, difficulty, difficulty_rating,
			circle_count, slider_count, spinner_count, max_combo,
			drain_time, total_time, bpm, cs, ar, od, hp, mode, status,
			chart_file_md5, chart_file_url, created_at, updated_at
		FROM beatmap
		WHERE beatmapset_id = $1
		ORDER BY id`

	rows, err := s.pool.Query(ctx, query, beatmapsetID)
	if err != nil {
		return nil, fmt.Errorf("store: beatmaps by beatmapset id: %w", err)
	}
	defer rows.Close()

	var out []models.Beatmap
	for rows.Next() {
		var b models.Beatmap
		if err := rows.Scan(
			&b.ID, &b.ExternalID, &b.BeatmapsetID, &b.Difficulty, &b.DifficultyRating,
			&b.CircleCount, &b.SliderCount, &b.SpinnerCount, &b.MaxCombo,
			&b.DrainTime, &b.TotalTime, &b.BPM, &b.CS, &b.AR, &b.OD, &b.HP, &b.Mode, &b.Status,
			&b.ChartFileMD5, &b.ChartFileURL, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: scan beatmap: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// errNoRows is pgx's no-rows sentinel; mapNoRows translates it to
// ErrNotFound so callers outside this package don't need to import pgx.
var errNoRows = pgx.ErrNoRows

// ErrNotFound is returned by single-row lookups when no row matches.
var ErrNotFound = errors.New("store: not found")

func mapNoRows(err error) error {
	if errors.Is(err, errNoRows) {
		return ErrNotFound
	}
	return err
}
