// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

// Package query is the filtered read path (C8): a predicate builder shared
// by three read modes (find, count, random) plus a dedicated by-id detail
// lookup, over the three-table left-join beatmapset ⟵ beatmap ⟵ msd.
package query

// Filters is the complete set of predicate inputs the HTTP query
// parameters decode into. Every field is optional; an absent field omits
// its predicate entirely rather than matching everything via a sentinel
// value.
type Filters struct {
	SearchTerm *string

	OverallMin *float64
	OverallMax *float64

	SelectedPattern *string
	PatternMin      *float64
	PatternMax      *float64

	BPMMin *float64
	BPMMax *float64

	TotalTimeMin *int32
	TotalTimeMax *int32

	Page    int
	PerPage int
}

// defaultPerPage and the 1-based page convention match spec.md §4.8.
const defaultPerPage = 10

// effectivePerPage returns the configured PerPage or the default.
func (f Filters) effectivePerPage() int {
	if f.PerPage <= 0 {
		return defaultPerPage
	}
	return f.PerPage
}

// effectivePage returns the configured Page or page 1.
func (f Filters) effectivePage() int {
	if f.Page <= 0 {
		return 1
	}
	return f.Page
}

// offset computes the zero-based row offset for the current page.
func (f Filters) offset() int {
	return (f.effectivePage() - 1) * f.effectivePerPage()
}

// patternColumns is the closed whitelist of pattern names the query engine
// accepts. The SQL column name is looked up here by identity comparison —
// request data never reaches the SQL string directly, per spec.md §9's
// "Dynamic SQL" guidance.
var patternColumns = map[string]string{
	"stream":     "stream",
	"jumpstream": "jumpstream",
	"handstream": "handstream",
	"stamina":    "stamina",
	"jackspeed":  "jackspeed",
	"chordjack":  "chordjack",
	"technical":  "technical",
}

// patternColumn looks up the SQL column for a requested pattern name. The
// second return is false for any name outside the whitelist, in which case
// the engine must silently ignore the pattern filter rather than compose
// an invalid column reference.
func patternColumn(name string) (string, bool) {
	col, ok := patternColumns[name]
	return col, ok
}
