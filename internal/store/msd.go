// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Glubus/osu.osef.me-backend/internal/models"
)

// MSDStore is the typed CRUD surface over the msd table. Each row is one
// (beatmap_id, rate) rating vector; Calculator.RateGrid's fourteen entries
// each become one row per ingested beatmap.
type MSDStore struct {
	pool *pgxpool.Pool
}

// Insert performs a straight insert. (beatmap_id, rate) is unique; callers
// are expected to insert each rate exactly once per beatmap.
func (s *MSDStore) Insert(ctx context.Context, m models.MSD) (int64, error) {
	const query = `
		INSERT INTO msd (
			beatmap_id, overall, stream, jumpstream, handstream, stamina,
			jackspeed, chordjack, technical, rate, main_pattern
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id int64
	err := s.pool.QueryRow(ctx, query,
		m.BeatmapID, m.Overall, m.Stream, m.Jumpstream, m.Handstream, m.Stamina,
		m.Jackspeed, m.Chordjack, m.Technical, m.Rate, m.MainPattern,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: insert msd: %w", err)
	}
	return id, nil
}

// ByBeatmapID fetches the complete rating vector (every rate) for a single
// beatmap, used by the by-id detail query mode.
func (s *MSDStore) ByBeatmapID(ctx context.Context, beatmapID int64) ([]models.MSD, error) {
	const query = `
		SELECT id, beatmap_id, overall, stream, jumpstream, handstream, stamina,
			jackspeed, chordjack, technical, rate, main_pattern, created_at, updated_at
		FROM msd
		WHERE beatmap_id = $1
		ORDER BY rate`

	rows, err := s.pool.Query(ctx, query, beatmapID)
	if err != nil {
		return nil, fmt.Errorf("store: msd by beatmap id: %w", err)
	}
	defer rows.Close()

	var out []models.MSD
	for rows.Next() {
		var m models.MSD
		if err := rows.Scan(
			&m.ID, &m.BeatmapID, &m.Overall, &m.Stream, &m.Jumpstream, &m.Handstream, &m.Stamina,
			&m.Jackspeed, &m.Chordjack, &m.Technical, &m.Rate, &m.MainPattern, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: scan msd: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
