// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package msd

import (
	"fmt"

	"github.com/Glubus/osu.osef.me-backend/internal/chart"
	"github.com/Glubus/osu.osef.me-backend/internal/models"
)

// Compute invokes the given Calculator across the full rate grid and
// attaches the beatmap id and rate to each resulting MSD record, in grid
// order. This is the entry point the ingest worker's Rate step uses.
func Compute(calc Calculator, beatmapID int64, notes []chart.Note) ([]models.MSD, error) {
	ssrs, err := calc.ComputeAllRates(notes)
	if err != nil {
		return nil, fmt.Errorf("msd: compute: %w", err)
	}
	grid := RateGrid()
	if len(ssrs) != len(grid) {
		return nil, fmt.Errorf("msd: calculator returned %d snapshots, want %d", len(ssrs), len(grid))
	}

	out := make([]models.MSD, len(ssrs))
	for i, s := range ssrs {
		pattern, err := MainPattern(s)
		if err != nil {
			return nil, err
		}
		out[i] = models.MSD{
			BeatmapID:   beatmapID,
			Overall:     s.Overall,
			Stream:      s.Stream,
			Jumpstream:  s.Jumpstream,
			Handstream:  s.Handstream,
			Stamina:     s.Stamina,
			Jackspeed:   s.Jackspeed,
			Chordjack:   s.Chordjack,
			Technical:   s.Technical,
			Rate:        grid[i],
			MainPattern: pattern,
		}
	}
	return out, nil
}
