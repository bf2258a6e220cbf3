// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package msd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Glubus/osu.osef.me-backend/internal/chart"
)

func TestRateGrid_FourteenEntriesFromPoint7ToPoint2(t *testing.T) {
	grid := RateGrid()
	require.Len(t, grid, 14)
	assert.InDelta(t, 0.7, grid[0], 1e-9)
	assert.InDelta(t, 2.0, grid[13], 1e-9)
	for i := 1; i < len(grid); i++ {
		assert.InDelta(t, grid[i-1]+0.1, grid[i], 1e-9)
	}
}

func TestSingleton_ReturnsSameInstance(t *testing.T) {
	a := Singleton()
	b := Singleton()
	assert.Same(t, a, b)
}

func TestMainPattern_TopTwoDescendingWithDeclarationOrderTieBreak(t *testing.T) {
	s := Ssr{
		Stream:     10,
		Jumpstream: 10,
		Handstream: 5,
		Stamina:    5,
		Jackspeed:  5,
		Chordjack:  5,
		Technical:  5,
	}
	encoded, err := MainPattern(s)
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(encoded), &names))
	assert.Equal(t, []string{"stream", "jumpstream"}, names)
}

func TestMainPattern_StrictDescendingOrder(t *testing.T) {
	s := Ssr{
		Stream:     1,
		Jumpstream: 2,
		Handstream: 9,
		Stamina:    3,
		Jackspeed:  8,
		Chordjack:  1,
		Technical:  1,
	}
	encoded, err := MainPattern(s)
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(encoded), &names))
	assert.Equal(t, []string{"handstream", "jackspeed"}, names)
}

func TestCompute_AttachesRatesInGridOrder(t *testing.T) {
	notes := []chart.Note{
		{RowTimeSeconds: 0, ColumnsBitmask: 0b0001},
		{RowTimeSeconds: 1, ColumnsBitmask: 0b0011},
		{RowTimeSeconds: 2, ColumnsBitmask: 0b1111},
	}
	calc := newReferenceCalculator()
	records, err := Compute(calc, 42, notes)
	require.NoError(t, err)
	require.Len(t, records, 14)

	grid := RateGrid()
	for i, rec := range records {
		assert.Equal(t, int64(42), rec.BeatmapID)
		assert.InDelta(t, grid[i], rec.Rate, 1e-9)
		assert.NotEmpty(t, rec.MainPattern)
	}
}

func TestCompute_DistinctRatesAcrossAllRecords(t *testing.T) {
	notes := []chart.Note{{RowTimeSeconds: 0, ColumnsBitmask: 1}, {RowTimeSeconds: 1, ColumnsBitmask: 2}}
	calc := newReferenceCalculator()
	records, err := Compute(calc, 1, notes)
	require.NoError(t, err)

	seen := map[float64]bool{}
	for _, rec := range records {
		assert.False(t, seen[rec.Rate], "duplicate rate %v", rec.Rate)
		seen[rec.Rate] = true
	}
	assert.Len(t, seen, 14)
}
