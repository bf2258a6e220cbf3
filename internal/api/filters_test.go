// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters_AllFieldsPresent(t *testing.T) {
	q := url.Values{
		"search_term":      {"vivid"},
		"overall_min":      {"10.5"},
		"overall_max":      {"30"},
		"selected_pattern": {"stream"},
		"pattern_min":      {"5"},
		"pattern_max":      {"15"},
		"bpm_min":          {"140"},
		"bpm_max":          {"200"},
		"total_time_min":   {"60"},
		"total_time_max":   {"300"},
		"page":             {"2"},
		"per_page":         {"25"},
	}

	f := parseFilters(q)

	require.NotNil(t, f.SearchTerm)
	assert.Equal(t, "vivid", *f.SearchTerm)
	require.NotNil(t, f.OverallMin)
	assert.Equal(t, 10.5, *f.OverallMin)
	require.NotNil(t, f.SelectedPattern)
	assert.Equal(t, "stream", *f.SelectedPattern)
	require.NotNil(t, f.TotalTimeMin)
	assert.Equal(t, int32(60), *f.TotalTimeMin)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 25, f.PerPage)
}

func TestParseFilters_EmptyQueryLeavesEveryFieldNil(t *testing.T) {
	f := parseFilters(url.Values{})

	assert.Nil(t, f.SearchTerm)
	assert.Nil(t, f.OverallMin)
	assert.Nil(t, f.SelectedPattern)
	assert.Nil(t, f.BPMMin)
	assert.Equal(t, 0, f.Page)
	assert.Equal(t, 0, f.PerPage)
}

func TestParseFilters_UnparsableNumericIsIgnored(t *testing.T) {
	q := url.Values{"overall_min": {"not-a-number"}, "page": {"nope"}}
	f := parseFilters(q)

	assert.Nil(t, f.OverallMin)
	assert.Equal(t, 0, f.Page)
}
