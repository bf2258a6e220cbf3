// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package api

import (
	"net/url"
	"strconv"

	"github.com/Glubus/osu.osef.me-backend/internal/query"
)

// parseFilters decodes the shared Filters shape from request query
// parameters. Every field is optional; an unparsable numeric value is
// treated the same as an absent one rather than rejected, since the
// predicate builder already omits absent fields cleanly.
func parseFilters(q url.Values) query.Filters {
	var f query.Filters

	if v := q.Get("search_term"); v != "" {
		f.SearchTerm = &v
	}
	if v, ok := parseFloat(q.Get("overall_min")); ok {
		f.OverallMin = &v
	}
	if v, ok := parseFloat(q.Get("overall_max")); ok {
		f.OverallMax = &v
	}
	if v := q.Get("selected_pattern"); v != "" {
		f.SelectedPattern = &v
	}
	if v, ok := parseFloat(q.Get("pattern_min")); ok {
		f.PatternMin = &v
	}
	if v, ok := parseFloat(q.Get("pattern_max")); ok {
		f.PatternMax = &v
	}
	if v, ok := parseFloat(q.Get("bpm_min")); ok {
		f.BPMMin = &v
	}
	if v, ok := parseFloat(q.Get("bpm_max")); ok {
		f.BPMMax = &v
	}
	if v, ok := parseInt32(q.Get("total_time_min")); ok {
		f.TotalTimeMin = &v
	}
	if v, ok := parseInt32(q.Get("total_time_max")); ok {
		f.TotalTimeMax = &v
	}
	if v, ok := parseInt(q.Get("page")); ok {
		f.Page = v
	}
	if v, ok := parseInt(q.Get("per_page")); ok {
		f.PerPage = v
	}

	return f
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	return v, err == nil
}

func parseInt32(s string) (int32, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err == nil
}
