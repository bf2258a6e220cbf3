// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Glubus/osu.osef.me-backend/internal/models"
)

func TestFoldBeatmapsets_PreservesFirstOccurrenceOrder(t *testing.T) {
	// Beatmapset 30 appears first even though its numeric id is largest,
	// and insertion order must survive the fold rather than being
	// resorted by id.
	rows := []findRow{
		{bs: models.Beatmapset{ID: 30}, b: &models.BeatmapShort{ID: 1}},
		{bs: models.Beatmapset{ID: 10}, b: &models.BeatmapShort{ID: 2}},
		{bs: models.Beatmapset{ID: 30}, b: &models.BeatmapShort{ID: 3}},
		{bs: models.Beatmapset{ID: 20}, b: &models.BeatmapShort{ID: 4}},
	}

	out := foldBeatmapsets(rows)

	require.Len(t, out, 3)
	assert.Equal(t, int64(30), out[0].Beatmapset.ID)
	assert.Equal(t, int64(10), out[1].Beatmapset.ID)
	assert.Equal(t, int64(20), out[2].Beatmapset.ID)
	require.Len(t, out[0].Beatmaps, 2)
	assert.Equal(t, int64(1), out[0].Beatmaps[0].ID)
	assert.Equal(t, int64(3), out[0].Beatmaps[1].ID)
}

func TestFoldBeatmapsets_AttachesMSDWhenPresent(t *testing.T) {
	rows := []findRow{
		{bs: models.Beatmapset{ID: 1}, b: &models.BeatmapShort{ID: 1}, msd: &models.MSDShort{Overall: 25.5}},
		{bs: models.Beatmapset{ID: 1}, b: &models.BeatmapShort{ID: 2}, msd: nil},
	}

	out := foldBeatmapsets(rows)

	require.Len(t, out, 1)
	require.Len(t, out[0].Beatmaps, 2)
	require.NotNil(t, out[0].Beatmaps[0].MSD)
	assert.Equal(t, 25.5, out[0].Beatmaps[0].MSD.Overall)
	assert.Nil(t, out[0].Beatmaps[1].MSD)
}

func TestFoldBeatmapsets_EmptyInputReturnsEmptySlice(t *testing.T) {
	out := foldBeatmapsets(nil)
	assert.Empty(t, out)
}

func TestFoldBeatmapsets_NilBeatmapLeavesEmptyBeatmapsSlice(t *testing.T) {
	// A beatmapset with no persisted beatmap yet (the LEFT JOIN produced a
	// null row) is kept, not dropped, with an empty Beatmaps slice.
	rows := []findRow{
		{bs: models.Beatmapset{ID: 1}, b: nil},
	}

	out := foldBeatmapsets(rows)

	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].Beatmapset.ID)
	assert.Empty(t, out[0].Beatmaps)
}
