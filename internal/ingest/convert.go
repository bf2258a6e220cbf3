// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package ingest

import (
	"github.com/Glubus/osu.osef.me-backend/internal/models"
	"github.com/Glubus/osu.osef.me-backend/internal/osuapi"
)

// beatmapsetFromDescriptor maps the upstream catalog's beatmapset shape
// onto the persisted entity. Featured has no upstream equivalent exposed by
// the catalog and is left at its zero value; it is not writable by this
// pipeline.
func beatmapsetFromDescriptor(d osuapi.BeatmapsetDescriptor) models.Beatmapset {
	return models.Beatmapset{
		ExternalCatalogID: d.ID,
		Artist:            d.Artist,
		ArtistUnicode:     d.ArtistUnicode,
		Title:             d.Title,
		TitleUnicode:      d.TitleUnicode,
		Creator:           d.Creator,
		Source:            d.Source,
		Tags:              d.Tags,
		Video:             d.Video,
		Storyboard:        d.Storyboard,
		Explicit:          d.NSFW,
		CoverURL:          d.CoverURL,
		PreviewURL:        d.PreviewURL,
	}
}

// beatmapFromDescriptor maps the upstream catalog's beatmap shape onto the
// persisted entity, attaching the surrogate beatmapset id resolved by the
// prior upsert (nil when the catalog returned no parent set).
func beatmapFromDescriptor(d osuapi.BeatmapDescriptor, beatmapsetID *int64) models.Beatmap {
	return models.Beatmap{
		ExternalID:       d.ID,
		BeatmapsetID:     beatmapsetID,
		Difficulty:       d.Version,
		DifficultyRating: d.DifficultyRating,
		CircleCount:      d.CountCircles,
		SliderCount:      d.CountSliders,
		SpinnerCount:     d.CountSpinners,
		MaxCombo:         d.MaxCombo,
		DrainTime:        d.HitLength,
		TotalTime:        d.TotalLength,
		BPM:              d.BPM,
		CS:               d.CS,
		AR:               d.AR,
		OD:               d.OD,
		HP:               d.HP,
		Mode:             d.Mode,
		Status:           d.Status,
		ChartFileMD5:     d.Checksum,
		ChartFileURL:     d.URL,
	}
}
