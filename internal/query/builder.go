// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package query

import (
	"fmt"
	"strings"
)

// queryType selects which statement shape build assembles: the three list
// modes share one predicate builder and diverge only in their tail clause.
type queryType int

const (
	queryFind queryType = iota
	queryCount
	queryRandom
)

const baseFindSelect = `SELECT
	bs.id, bs.external_catalog_id, bs.artist, bs.artist_unicode, bs.title, bs.title_unicode,
	bs.creator, bs.source, bs.tags, bs.video, bs.storyboard, bs.explicit, bs.featured,
	bs.cover_url, bs.preview_url, bs.file_url, bs.created_at, bs.updated_at,
	b.id, b.external_id, b.difficulty, b.difficulty_rating, b.mode, b.status,
	m.id, m.overall, m.main_pattern
FROM beatmapset bs
LEFT JOIN beatmap b ON b.beatmapset_id = bs.id
LEFT JOIN msd m ON m.beatmap_id = b.id`

const baseCountSelect = `SELECT COUNT(DISTINCT bs.id)
FROM beatmapset bs
LEFT JOIN beatmap b ON b.beatmapset_id = bs.id
LEFT JOIN msd m ON m.beatmap_id = b.id`

// build assembles the SQL text and positional arguments for f under qt,
// reproducing the predicate order of the patterns-by-filters query: search
// term, overall gate and range, pattern validation and range, bpm range,
// total-time range, and finally the conditional rate=1.0 pin. Binding order
// matches emission order throughout, so args[i] always lines up with the
// i-th '$'-placeholder written so far.
func build(qt queryType, f Filters) (string, []any) {
	var where []string
	var args []any

	if f.SearchTerm != nil && *f.SearchTerm != "" {
		args = append(args, "%"+*f.SearchTerm+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(b.difficulty ILIKE $%d OR b.status ILIKE $%d OR bs.artist ILIKE $%d OR bs.artist_unicode ILIKE $%d OR bs.title ILIKE $%d OR bs.title_unicode ILIKE $%d OR bs.creator ILIKE $%d)",
			n, n, n, n, n, n, n))
	}

	msdTouched := false

	if f.OverallMin != nil || f.OverallMax != nil {
		where = append(where, "m.overall IS NOT NULL")
		msdTouched = true
		if f.OverallMin != nil {
			args = append(args, *f.OverallMin)
			where = append(where, fmt.Sprintf("m.overall >= $%d", len(args)))
		}
		if f.OverallMax != nil {
			args = append(args, *f.OverallMax)
			where = append(where, fmt.Sprintf("m.overall <= $%d", len(args)))
		}
	}

	if f.SelectedPattern != nil {
		if col, ok := patternColumn(*f.SelectedPattern); ok {
			msdTouched = true
			where = append(where, "m.id IS NOT NULL")
			if f.PatternMin != nil {
				args = append(args, *f.PatternMin)
				where = append(where, fmt.Sprintf("m.%s >= $%d", col, len(args)))
			}
			if f.PatternMax != nil {
				args = append(args, *f.PatternMax)
				where = append(where, fmt.Sprintf("m.%s <= $%d", col, len(args)))
			}
			args = append(args, "%\""+*f.SelectedPattern+"\"%")
			where = append(where, fmt.Sprintf("m.main_pattern ILIKE $%d", len(args)))
		}
	}

	if f.BPMMin != nil {
		args = append(args, *f.BPMMin)
		where = append(where, fmt.Sprintf("b.bpm >= $%d", len(args)))
	}
	if f.BPMMax != nil {
		args = append(args, *f.BPMMax)
		where = append(where, fmt.Sprintf("b.bpm <= $%d", len(args)))
	}

	if f.TotalTimeMin != nil {
		args = append(args, *f.TotalTimeMin)
		where = append(where, fmt.Sprintf("b.total_time >= $%d", len(args)))
	}
	if f.TotalTimeMax != nil {
		args = append(args, *f.TotalTimeMax)
		where = append(where, fmt.Sprintf("b.total_time <= $%d", len(args)))
	}

	// Conditional, not unconditional: the rate pin only applies once an
	// MSD-touching predicate is in play, matching the filtered-search path
	// rather than the always-pinned variant used elsewhere in the source
	// this was ported from.
	if msdTouched {
		where = append(where, "m.rate = 1.0")
	}

	var b strings.Builder
	switch qt {
	case queryCount:
		b.WriteString(baseCountSelect)
	default:
		b.WriteString(baseFindSelect)
	}

	if len(where) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	switch qt {
	case queryFind:
		b.WriteString("\nORDER BY bs.id, b.id")
		args = append(args, f.effectivePerPage())
		b.WriteString(fmt.Sprintf("\nLIMIT $%d", len(args)))
		args = append(args, f.offset())
		b.WriteString(fmt.Sprintf("\nOFFSET $%d", len(args)))
	case queryRandom:
		b.WriteString("\nORDER BY RANDOM()\nLIMIT 10")
	case queryCount:
		// no ordering or pagination on a scalar count
	}

	return b.String(), args
}
