// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package api

import "github.com/Glubus/osu.osef.me-backend/internal/models"

// BatchRequest is the body of POST /api/beatmap/batch. An empty Checksums
// slice is not a validation error — it is the legacy "no checksum
// provided" admission quirk (spec.md §8), short-circuited in the handler
// before real validation runs.
type BatchRequest struct {
	Checksums []string `json:"checksums" validate:"dive,required"`
}

// ByOsuIDRequest is the body of POST /api/beatmap/by_osu_id. A zero ID is
// likewise the legacy "no id provided" admission quirk, not a validation
// error.
type ByOsuIDRequest struct {
	ID int64 `json:"id"`
}

// AdmissionResponse is returned by both admission endpoints.
type AdmissionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// FindResponse is the paginated body of GET /api/beatmap.
type FindResponse struct {
	Beatmaps   []models.BeatmapsetCompleteShort `json:"beatmaps"`
	Total      int64                            `json:"total"`
	Page       int                              `json:"page"`
	PerPage    int                              `json:"per_page"`
	TotalPages int                              `json:"total_pages"`
}

// RandomResponse is the body of GET /api/beatmap/random.
type RandomResponse struct {
	Beatmaps []models.BeatmapsetCompleteShort `json:"beatmaps"`
	Count    int                              `json:"count"`
}

// CountResponse is the body of GET /api/beatmap/count.
type CountResponse struct {
	Total int64 `json:"total"`
}

// BeatmapsetDetailResponse is the body of GET /api/beatmapset/{osu_id}.
type BeatmapsetDetailResponse struct {
	Beatmap models.BeatmapsetCompleteExtended `json:"beatmap"`
}

// StatusResponse is the body of GET /api/pending_beatmap/status/{hash}.
type StatusResponse struct {
	Status string `json:"status"`
}

// Pending-beatmap lookup states.
const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusFailed  = "failed"
	StatusUnknown = "unknown"
)
