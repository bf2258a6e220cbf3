// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package query

import (
	"github.com/jackc/pgx/v5"

	"github.com/Glubus/osu.osef.me-backend/internal/models"
)

// findRow is the scan target for one joined row of the find/random shape.
// b/msd are nil when the beatmapset has no persisted beatmap yet — a valid
// partial-persistence state (spec.md §9) the LEFT JOIN surfaces as nulls.
type findRow struct {
	bs  models.Beatmapset
	b   *models.BeatmapShort
	msd *models.MSDShort
}

func scanFindRow(rows pgx.Rows) (findRow, error) {
	var r findRow
	var beatmapID *int64
	var beatmapExternalID *int64
	var beatmapDifficulty *string
	var beatmapDifficultyRating *float64
	var beatmapMode *int32
	var beatmapStatus *string
	var msdID *int64
	var msdOverall *float64
	var msdPattern *string

	err := rows.Scan(
		&r.bs.ID, &r.bs.ExternalCatalogID, &r.bs.Artist, &r.bs.ArtistUnicode, &r.bs.Title, &r.bs.TitleUnicode,
		&r.bs.Creator, &r.bs.Source, &r.bs.Tags, &r.bs.Video, &r.bs.Storyboard, &r.bs.Explicit, &r.bs.Featured,
		&r.bs.CoverURL, &r.bs.PreviewURL, &r.bs.FileURL, &r.bs.CreatedAt, &r.bs.UpdatedAt,
		&beatmapID, &beatmapExternalID, &beatmapDifficulty, &beatmapDifficultyRating, &beatmapMode, &beatmapStatus,
		&msdID, &msdOverall, &msdPattern,
	)
	if err != nil {
		return findRow{}, err
	}

	if beatmapID != nil {
		bm := &models.BeatmapShort{ID: *beatmapID}
		if beatmapExternalID != nil {
			bm.ExternalID = *beatmapExternalID
		}
		if beatmapDifficulty != nil {
			bm.Difficulty = *beatmapDifficulty
		}
		if beatmapDifficultyRating != nil {
			bm.DifficultyRating = *beatmapDifficultyRating
		}
		if beatmapMode != nil {
			bm.Mode = *beatmapMode
		}
		if beatmapStatus != nil {
			bm.Status = *beatmapStatus
		}
		r.b = bm
	}

	if msdID != nil {
		r.msd = &models.MSDShort{ID: *msdID}
		if msdOverall != nil {
			r.msd.Overall = *msdOverall
		}
		if msdPattern != nil {
			r.msd.MainPattern = *msdPattern
		}
	}
	return r, nil
}

// foldBeatmapsets folds a flat row stream into the nested
// {beatmapset, beatmap[]} shape, preserving the insertion order of each
// beatmapset's first occurrence. A plain Go map cannot do this — its
// iteration order is unspecified — so the order is tracked separately in
// a slice alongside an index map for O(1) lookups. A beatmapset with no
// persisted beatmap (LEFT JOIN produced a null row) is kept with an empty
// Beatmaps slice rather than dropped, per spec.md §9's partial-persistence
// acceptance.
func foldBeatmapsets(rowsList []findRow) []models.BeatmapsetCompleteShort {
	byID := make(map[int64]int, len(rowsList))
	out := make([]models.BeatmapsetCompleteShort, 0, len(rowsList))

	for _, r := range rowsList {
		idx, seen := byID[r.bs.ID]
		if !seen {
			idx = len(out)
			byID[r.bs.ID] = idx
			out = append(out, models.BeatmapsetCompleteShort{Beatmapset: r.bs})
		}
		if r.b == nil {
			continue
		}
		bm := *r.b
		bm.MSD = r.msd
		out[idx].Beatmaps = append(out[idx].Beatmaps, bm)
	}

	return out
}
