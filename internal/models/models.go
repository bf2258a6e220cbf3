// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

// Package models defines the persistent entities of the ingestion and query
// domain: beatmapsets, beatmaps, their MSD ratings, and the two durable
// queues (pending and failed) that drive the ingest worker.
package models

import "time"

// Beatmapset is a release unit from the external catalog: one or more
// beatmaps grouped around a single song.
type Beatmapset struct {
	ID                int64     `json:"id"`
	ExternalCatalogID int64     `json:"external_catalog_id"`
	Artist            string    `json:"artist"`
	ArtistUnicode     string    `json:"artist_unicode"`
	Title             string    `json:"title"`
	TitleUnicode      string    `json:"title_unicode"`
	Creator           string    `json:"creator"`
	Source            string    `json:"source"`
	Tags              string    `json:"tags"`
	Video             bool      `json:"video"`
	Storyboard        bool      `json:"storyboard"`
	Explicit          bool      `json:"explicit"`
	Featured          bool      `json:"featured"`
	CoverURL          string    `json:"cover_url"`
	PreviewURL        string    `json:"preview_url"`
	FileURL           string    `json:"file_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Beatmap is a single difficulty within a Beatmapset.
type Beatmap struct {
	ID              int64     `json:"id"`
	ExternalID      int64     `json:"external_id"`
	BeatmapsetID    *int64    `json:"beatmapset_id,omitempty"`
	Difficulty      string    `json:"difficulty"`
	DifficultyRating float64  `json:"difficulty_rating"`
	CircleCount     int32     `json:"circle_count"`
	SliderCount     int32     `json:"slider_count"`
	SpinnerCount    int32     `json:"spinner_count"`
	MaxCombo        int32     `json:"max_combo"`
	DrainTime       int32     `json:"drain_time"`
	TotalTime       int32     `json:"total_time"`
	BPM             float64   `json:"bpm"`
	CS              float64   `json:"cs"`
	AR              float64   `json:"ar"`
	OD              float64   `json:"od"`
	HP              float64   `json:"hp"`
	Mode            int32     `json:"mode"`
	Status          string    `json:"status"`
	ChartFileMD5    string    `json:"chart_file_md5"`
	ChartFileURL    string    `json:"chart_file_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ManiaMode is the external catalog's integer identifier for the four-column
// vertical-scrolling rhythm game mode.
const ManiaMode = 3

// RequiredKeyCount is the only column count (CS value) the ingest pipeline
// accepts.
const RequiredKeyCount = 4.0

// MSD is a Mina-Skillset Difficulty rating for one (beatmap, rate) pair.
type MSD struct {
	ID          int64     `json:"id"`
	BeatmapID   int64     `json:"beatmap_id"`
	Overall     float64   `json:"overall"`
	Stream      float64   `json:"stream"`
	Jumpstream  float64   `json:"jumpstream"`
	Handstream  float64   `json:"handstream"`
	Stamina     float64   `json:"stamina"`
	Jackspeed   float64   `json:"jackspeed"`
	Chordjack   float64   `json:"chordjack"`
	Technical   float64   `json:"technical"`
	Rate        float64   `json:"rate"`
	MainPattern string    `json:"main_pattern"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PendingBeatmap is a row in the durable ingest queue: a chart fingerprint
// waiting to be classified, fetched, rated, and persisted.
type PendingBeatmap struct {
	ID        int64     `json:"id"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
}

// FailedQuery is a row in the quarantine table: a fingerprint whose ingest
// attempt terminated without success, short-circuiting future attempts.
type FailedQuery struct {
	ID        int64     `json:"id"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
}

// BeatmapShort is the row-level projection used by the query engine's list
// modes (find/random): a beatmap joined with its rate=1.0 MSD summary.
type BeatmapShort struct {
	ID               int64    `json:"id"`
	ExternalID       int64    `json:"osu_id"`
	Difficulty       string   `json:"difficulty"`
	DifficultyRating float64  `json:"difficulty_rating"`
	Mode             int32    `json:"mode"`
	Status           string   `json:"status"`
	MSD              *MSDShort `json:"msd,omitempty"`
}

// MSDShort is the subset of MSD fields surfaced in list responses.
type MSDShort struct {
	ID          int64  `json:"id"`
	Overall     float64 `json:"overall"`
	MainPattern string `json:"main_pattern"`
}

// BeatmapsetCompleteShort nests a Beatmapset with its child BeatmapShort rows,
// the shape returned by the Find and Random query modes.
type BeatmapsetCompleteShort struct {
	Beatmapset Beatmapset     `json:"beatmapset"`
	Beatmaps   []BeatmapShort `json:"beatmaps"`
}

// BeatmapExtended nests a Beatmap with the complete set of its MSD rows
// (one per rate), the shape returned by the by-id detail endpoint.
type BeatmapExtended struct {
	Beatmap Beatmap `json:"beatmap"`
	MSDs    []MSD   `json:"msds"`
}

// BeatmapsetCompleteExtended is the full single-beatmapset detail response:
// every child beatmap with its complete MSD vector.
type BeatmapsetCompleteExtended struct {
	Beatmapset Beatmapset        `json:"beatmapset"`
	Beatmaps   []BeatmapExtended `json:"beatmaps"`
}
