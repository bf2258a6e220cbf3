// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Glubus/osu.osef.me-backend/internal/models"
	"github.com/Glubus/osu.osef.me-backend/internal/store"
)

// ErrNotFound is returned by ByID when no beatmapset matches the requested
// external catalog id.
var ErrNotFound = errors.New("query: not found")

// beatmapsetLookup is the existence check ByID runs before fetching
// children — the by-id mode's first of two queries.
type beatmapsetLookup interface {
	ByExternalCatalogID(ctx context.Context, externalCatalogID int64) (*models.Beatmapset, error)
}

// Engine is the filtered read path (C8) over the pool the ingest worker
// also writes through.
type Engine struct {
	pool        *pgxpool.Pool
	beatmapsets beatmapsetLookup
}

// New constructs an Engine bound to pool, using beatmapsets for the by-id
// existence check.
func New(pool *pgxpool.Pool, beatmapsets beatmapsetLookup) *Engine {
	return &Engine{pool: pool, beatmapsets: beatmapsets}
}

// Find returns the page of beatmapsets (with child beatmaps) matching f,
// folded in the insertion order their beatmapset first appears in the
// result stream.
func (e *Engine) Find(ctx context.Context, f Filters) ([]models.BeatmapsetCompleteShort, error) {
	sql, args := build(queryFind, f)
	rows, err := e.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query: find: %w", err)
	}
	defer rows.Close()

	collected, err := collectFindRows(rows)
	if err != nil {
		return nil, fmt.Errorf("query: find: %w", err)
	}
	return foldBeatmapsets(collected), nil
}

// Random returns up to ten beatmapsets chosen at random, matching f.
func (e *Engine) Random(ctx context.Context, f Filters) ([]models.BeatmapsetCompleteShort, error) {
	sql, args := build(queryRandom, f)
	rows, err := e.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query: random: %w", err)
	}
	defer rows.Close()

	collected, err := collectFindRows(rows)
	if err != nil {
		return nil, fmt.Errorf("query: random: %w", err)
	}
	return foldBeatmapsets(collected), nil
}

// Count returns the distinct beatmapset count matching f, ignoring
// pagination.
func (e *Engine) Count(ctx context.Context, f Filters) (int64, error) {
	sql, args := build(queryCount, f)
	var total int64
	if err := e.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("query: count: %w", err)
	}
	return total, nil
}

func collectFindRows(rows pgx.Rows) ([]findRow, error) {
	var out []findRow
	for rows.Next() {
		r, err := scanFindRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const byIDChildrenQuery = `SELECT
	b.id, b.external_id, b.difficulty, b.difficulty_rating, b.circle_count, b.slider_count,
	b.spinner_count, b.max_combo, b.drain_time, b.total_time, b.bpm, b.cs, b.ar, b.od, b.hp,
	b.mode, b.status, b.chart_file_md5, b.chart_file_url, b.created_at, b.updated_at,
	m.id, m.beatmap_id, m.overall, m.stream, m.jumpstream, m.handstream, m.stamina,
	m.jackspeed, m.chordjack, m.technical, m.rate, m.main_pattern, m.created_at, m.updated_at
FROM beatmap b
LEFT JOIN msd m ON m.beatmap_id = b.id
WHERE b.beatmapset_id = $1
ORDER BY b.id, m.rate`

// ByID returns the full detail view for one beatmapset — every child
// beatmap with its complete per-rate MSD vector — looked up by external
// catalog id. It runs the by-id mode's two queries separately: an
// existence check against the beatmapset itself, then a children fetch.
// A beatmapset that exists but has no persisted beatmaps yet (spec.md §9's
// partial-persistence state) returns successfully with an empty Beatmaps
// slice rather than ErrNotFound.
func (e *Engine) ByID(ctx context.Context, externalCatalogID int64) (*models.BeatmapsetCompleteExtended, error) {
	bs, err := e.beatmapsets.ByExternalCatalogID(ctx, externalCatalogID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query: by id: %w", err)
	}

	result := &models.BeatmapsetCompleteExtended{Beatmapset: *bs}

	rows, err := e.pool.Query(ctx, byIDChildrenQuery, bs.ID)
	if err != nil {
		return nil, fmt.Errorf("query: by id: %w", err)
	}
	defer rows.Close()

	beatmapIdx := make(map[int64]int)

	for rows.Next() {
		var beatmapID, beatmapExternalID *int64
		var beatmapDifficulty, beatmapStatus, beatmapChartMD5, beatmapChartURL *string
		var beatmapDifficultyRating, beatmapBPM, beatmapCS, beatmapAR, beatmapOD, beatmapHP *float64
		var beatmapCircleCount, beatmapSliderCount, beatmapSpinnerCount, beatmapMaxCombo *int32
		var beatmapDrainTime, beatmapTotalTime, beatmapMode *int32
		var beatmapCreated, beatmapUpdated *interface{}
		var msdID, msdBeatmapID *int64
		var msdOverall, msdStream, msdJumpstream, msdHandstream, msdStamina *float64
		var msdJackspeed, msdChordjack, msdTechnical, msdRate *float64
		var msdPattern *string
		var msdCreated, msdUpdated *interface{}

		if err := rows.Scan(
			&beatmapID, &beatmapExternalID, &beatmapDifficulty, &beatmapDifficultyRating,
			&beatmapCircleCount, &beatmapSliderCount, &beatmapSpinnerCount, &beatmapMaxCombo,
			&beatmapDrainTime, &beatmapTotalTime, &beatmapBPM, &beatmapCS, &beatmapAR, &beatmapOD, &beatmapHP,
			&beatmapMode, &beatmapStatus, &beatmapChartMD5, &beatmapChartURL, &beatmapCreated, &beatmapUpdated,
			&msdID, &msdBeatmapID, &msdOverall, &msdStream, &msdJumpstream, &msdHandstream, &msdStamina,
			&msdJackspeed, &msdChordjack, &msdTechnical, &msdRate, &msdPattern, &msdCreated, &msdUpdated,
		); err != nil {
			return nil, fmt.Errorf("query: by id: %w", err)
		}

		if beatmapID == nil {
			continue
		}

		idx, seen := beatmapIdx[*beatmapID]
		if !seen {
			var b models.Beatmap
			b.ID = *beatmapID
			if beatmapExternalID != nil {
				b.ExternalID = *beatmapExternalID
			}
			if beatmapDifficulty != nil {
				b.Difficulty = *beatmapDifficulty
			}
			if beatmapDifficultyRating != nil {
				b.DifficultyRating = *beatmapDifficultyRating
			}
			if beatmapCircleCount != nil {
				b.CircleCount = *beatmapCircleCount
			}
			if beatmapSliderCount != nil {
				b.SliderCount = *beatmapSliderCount
			}
			if beatmapSpinnerCount != nil {
				b.SpinnerCount = *beatmapSpinnerCount
			}
			if beatmapMaxCombo != nil {
				b.MaxCombo = *beatmapMaxCombo
			}
			if beatmapDrainTime != nil {
				b.DrainTime = *beatmapDrainTime
			}
			if beatmapTotalTime != nil {
				b.TotalTime = *beatmapTotalTime
			}
			if beatmapBPM != nil {
				b.BPM = *beatmapBPM
			}
			if beatmapCS != nil {
				b.CS = *beatmapCS
			}
			if beatmapAR != nil {
				b.AR = *beatmapAR
			}
			if beatmapOD != nil {
				b.OD = *beatmapOD
			}
			if beatmapHP != nil {
				b.HP = *beatmapHP
			}
			if beatmapMode != nil {
				b.Mode = *beatmapMode
			}
			if beatmapStatus != nil {
				b.Status = *beatmapStatus
			}
			if beatmapChartMD5 != nil {
				b.ChartFileMD5 = *beatmapChartMD5
			}
			if beatmapChartURL != nil {
				b.ChartFileURL = *beatmapChartURL
			}
			idx = len(result.Beatmaps)
			beatmapIdx[*beatmapID] = idx
			result.Beatmaps = append(result.Beatmaps, models.BeatmapExtended{Beatmap: b})
		}

		if msdID != nil {
			m := models.MSD{ID: *msdID, BeatmapID: *msdBeatmapID}
			if msdOverall != nil {
				m.Overall = *msdOverall
			}
			if msdStream != nil {
				m.Stream = *msdStream
			}
			if msdJumpstream != nil {
				m.Jumpstream = *msdJumpstream
			}
			if msdHandstream != nil {
				m.Handstream = *msdHandstream
			}
			if msdStamina != nil {
				m.Stamina = *msdStamina
			}
			if msdJackspeed != nil {
				m.Jackspeed = *msdJackspeed
			}
			if msdChordjack != nil {
				m.Chordjack = *msdChordjack
			}
			if msdTechnical != nil {
				m.Technical = *msdTechnical
			}
			if msdRate != nil {
				m.Rate = *msdRate
			}
			if msdPattern != nil {
				m.MainPattern = *msdPattern
			}
			result.Beatmaps[idx].MSDs = append(result.Beatmaps[idx].MSDs, m)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query: by id: %w", err)
	}
	return result, nil
}
