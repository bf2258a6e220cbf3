// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestBuild_NoFilters_OmitsRatePinAndWhereClause(t *testing.T) {
	sql, args := build(queryFind, Filters{})
	assert.NotContains(t, sql, "WHERE")
	assert.NotContains(t, sql, "m.rate = 1.0")
	require.Len(t, args, 2) // limit, offset only
	assert.Equal(t, defaultPerPage, args[0])
	assert.Equal(t, 0, args[1])
}

func TestBuild_OverallRange_PinsRateAndOrdersOverallThenRange(t *testing.T) {
	sql, args := build(queryFind, Filters{OverallMin: ptr(10.0), OverallMax: ptr(20.0)})

	assert.Contains(t, sql, "m.overall IS NOT NULL")
	assert.Contains(t, sql, "m.overall >= $1")
	assert.Contains(t, sql, "m.overall <= $2")
	assert.Contains(t, sql, "m.rate = 1.0")
	require.Len(t, args, 4) // overall min, overall max, limit, offset
	assert.Equal(t, 10.0, args[0])
	assert.Equal(t, 20.0, args[1])
}

func TestBuild_SelectedPattern_UsesWhitelistedColumn(t *testing.T) {
	sql, args := build(queryFind, Filters{SelectedPattern: ptr("stream"), PatternMin: ptr(5.0)})

	assert.Contains(t, sql, "m.id IS NOT NULL")
	assert.Contains(t, sql, "m.stream >= $1")
	assert.Contains(t, sql, "m.main_pattern ILIKE $2")
	assert.Contains(t, sql, "m.rate = 1.0")
	require.Len(t, args, 4)
	assert.Equal(t, `%"stream"%`, args[1])
}

func TestBuild_UnknownPattern_IsSilentlyIgnored(t *testing.T) {
	sql, args := build(queryFind, Filters{SelectedPattern: ptr("not-a-real-pattern")})

	assert.NotContains(t, sql, "m.id IS NOT NULL")
	assert.NotContains(t, sql, "m.rate = 1.0")
	require.Len(t, args, 2) // limit, offset only — no predicate args emitted
}

func TestBuild_SearchTerm_UsesSingleParamAcrossSevenColumns(t *testing.T) {
	sql, args := build(queryFind, Filters{SearchTerm: ptr("vivid")})

	assert.Equal(t, 7, strings.Count(sql, "$1"))
	assert.True(t, strings.Contains(sql, "b.difficulty ILIKE $1"))
	assert.True(t, strings.Contains(sql, "b.status ILIKE $1"))
	assert.True(t, strings.Contains(sql, "bs.artist ILIKE $1"))
	assert.True(t, strings.Contains(sql, "bs.creator ILIKE $1"))
	require.Len(t, args, 3)
	assert.Equal(t, "%vivid%", args[0])
}

func TestBuild_BPMAndTotalTimeRanges_DoNotPinRate(t *testing.T) {
	sql, args := build(queryFind, Filters{BPMMin: ptr(150.0), TotalTimeMax: ptr(int32(200))})

	assert.Contains(t, sql, "b.bpm >= $1")
	assert.Contains(t, sql, "b.total_time <= $2")
	assert.NotContains(t, sql, "m.rate = 1.0")
	require.Len(t, args, 4)
}

func TestBuild_Find_PaginatesWithDefaultsAndOffset(t *testing.T) {
	sql, args := build(queryFind, Filters{Page: 3, PerPage: 20})

	assert.Contains(t, sql, "ORDER BY bs.id, b.id")
	assert.Contains(t, sql, "LIMIT $1")
	assert.Contains(t, sql, "OFFSET $2")
	require.Len(t, args, 2)
	assert.Equal(t, 20, args[0])
	assert.Equal(t, 40, args[1]) // (page-1) * per_page
}

func TestBuild_Random_OmitsPaginationAndOrdersRandomly(t *testing.T) {
	sql, args := build(queryRandom, Filters{})
	assert.Contains(t, sql, "ORDER BY RANDOM()")
	assert.Contains(t, sql, "LIMIT 10")
	assert.Empty(t, args)
}

func TestBuild_Count_OmitsOrderAndLimit(t *testing.T) {
	sql, args := build(queryCount, Filters{OverallMin: ptr(1.0)})
	assert.Contains(t, sql, "SELECT COUNT(DISTINCT bs.id)")
	assert.NotContains(t, sql, "ORDER BY")
	assert.NotContains(t, sql, "LIMIT")
	assert.Len(t, args, 1)
}

func TestFilters_EffectivePaginationDefaults(t *testing.T) {
	f := Filters{}
	assert.Equal(t, 1, f.effectivePage())
	assert.Equal(t, defaultPerPage, f.effectivePerPage())
	assert.Equal(t, 0, f.offset())

	f2 := Filters{Page: 2, PerPage: 25}
	assert.Equal(t, 25, f2.offset())
}
