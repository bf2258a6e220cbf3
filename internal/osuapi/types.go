// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

// Package osuapi is a token-authenticated gateway to the external beatmap
// metadata catalog (C4): by_checksum and by_osu_id, each returning a
// beatmap descriptor plus (usually) its parent beatmapset descriptor.
package osuapi

import "fmt"

// BeatmapsetDescriptor is the subset of upstream beatmapset metadata the
// ingest pipeline persists.
type BeatmapsetDescriptor struct {
	ID            int64  `json:"id"`
	Artist        string `json:"artist"`
	ArtistUnicode string `json:"artist_unicode"`
	Title         string `json:"title"`
	TitleUnicode  string `json:"title_unicode"`
	Creator       string `json:"creator"`
	Source        string `json:"source"`
	Tags          string `json:"tags"`
	Video         bool   `json:"video"`
	Storyboard    bool   `json:"storyboard"`
	NSFW          bool   `json:"nsfw"`
	CoverURL      string `json:"cover_url"`
	PreviewURL    string `json:"preview_url"`
}

// BeatmapDescriptor is the subset of upstream beatmap metadata the ingest
// pipeline persists.
type BeatmapDescriptor struct {
	ID               int64   `json:"id"`
	Version          string  `json:"version"`
	DifficultyRating float64 `json:"difficulty_rating"`
	CountCircles     int32   `json:"count_circles"`
	CountSliders     int32   `json:"count_sliders"`
	CountSpinners    int32   `json:"count_spinners"`
	MaxCombo         int32   `json:"max_combo"`
	HitLength        int32   `json:"hit_length"`
	TotalLength      int32   `json:"total_length"`
	BPM              float64 `json:"bpm"`
	CS               float64 `json:"cs"`
	AR               float64 `json:"ar"`
	OD               float64 `json:"accuracy"`
	HP               float64 `json:"drain"`
	Mode             int32   `json:"mode_int"`
	Status           string  `json:"status"`
	Checksum         string  `json:"checksum"`
	URL              string  `json:"url"`
}

// BeatmapExtended is the composite response the upstream API returns for a
// single beatmap lookup: the beatmap itself, plus (usually) the parent set.
type BeatmapExtended struct {
	Beatmap    BeatmapDescriptor     `json:"beatmap"`
	Beatmapset *BeatmapsetDescriptor `json:"beatmapset,omitempty"`
}

// ChartFileURL returns the upstream URL the ingest worker downloads the
// chart text from.
func (b BeatmapExtended) ChartFileURL() string {
	return b.Beatmap.URL
}

// ApiError is a typed upstream failure: a non-2xx response or a transport
// failure reaching the catalog.
type ApiError struct {
	StatusCode int
	Message    string
}

func (e *ApiError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("osuapi: %s", e.Message)
	}
	return fmt.Sprintf("osuapi: status %d: %s", e.StatusCode, e.Message)
}
