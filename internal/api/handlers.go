// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

// Package api implements the HTTP surface (spec.md §6): two admission
// endpoints that feed the ingest queue, four read endpoints backed by the
// query engine, and a pending-status lookup. Routing and middleware live
// in router.go; this file holds the handler bodies.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Glubus/osu.osef.me-backend/internal/logging"
	"github.com/Glubus/osu.osef.me-backend/internal/models"
	"github.com/Glubus/osu.osef.me-backend/internal/osuapi"
	"github.com/Glubus/osu.osef.me-backend/internal/query"
	"github.com/Glubus/osu.osef.me-backend/internal/validation"
)

// AdmissionQueue is the subset of the queue façade (C6) the admission
// endpoints depend on.
type AdmissionQueue interface {
	AddHashes(ctx context.Context, hashes []string) (int, error)
}

// MetadataGateway is the subset of C4 the by_osu_id endpoint depends on.
type MetadataGateway interface {
	BeatmapByOsuID(ctx context.Context, id int64) (*osuapi.BeatmapExtended, error)
}

// QueryEngine is the subset of the query engine (C8) the four read
// endpoints depend on.
type QueryEngine interface {
	Find(ctx context.Context, f query.Filters) ([]models.BeatmapsetCompleteShort, error)
	Count(ctx context.Context, f query.Filters) (int64, error)
	Random(ctx context.Context, f query.Filters) ([]models.BeatmapsetCompleteShort, error)
	ByID(ctx context.Context, externalCatalogID int64) (*models.BeatmapsetCompleteExtended, error)
}

// PendingLookup answers the three existence checks the status endpoint
// folds into one of {pending, done, failed, unknown}.
type PendingLookup interface {
	PendingExistsByHash(ctx context.Context, hash string) (bool, error)
	BeatmapExistsByChecksum(ctx context.Context, checksum string) (bool, error)
	FailedExistsByHash(ctx context.Context, hash string) (bool, error)
}

// ErrNotFound is returned by QueryEngine.ByID when no match exists.
var ErrNotFound = query.ErrNotFound

// Handler bundles the dependencies every endpoint needs. Fields are
// interfaces rather than the concrete store/queue/osuapi types so handler
// tests can substitute fakes without a live Postgres connection or HTTP
// upstream.
type Handler struct {
	Queue   AdmissionQueue
	Gateway MetadataGateway
	Engine  QueryEngine
	Pending PendingLookup
}

// Batch admits a batch of chart checksums to the ingest queue.
//
// @Summary Queue beatmaps for ingestion by checksum
// @Description Admits up to 50 MD5 chart checksums into the durable pending queue
// @Tags Admission
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Checksums to admit"
// @Success 200 {object} AdmissionResponse
// @Failure 400 {object} errorBody
// @Router /api/beatmap/batch [post]
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}

	// Legacy quirk, not a real validation failure: an empty batch reports
	// HTTP 200 with a string "400" status field.
	if len(req.Checksums) == 0 {
		writeJSON(w, r, http.StatusOK, AdmissionResponse{Status: "400", Message: "No checksum provided"})
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		badRequest(w, r, verr.Error())
		return
	}

	inserted, err := h.Queue.AddHashes(r.Context(), req.Checksums)
	if err != nil {
		internalError(w, r, err)
		return
	}

	logging.CtxInfo(r.Context()).Int("inserted", inserted).Msg("admitted batch to pending queue")
	writeJSON(w, r, http.StatusOK, AdmissionResponse{Status: "200", Message: "admitted to queue"})
}

// ByOsuID resolves an upstream numeric id to its checksum, then admits it.
//
// @Summary Queue a beatmap for ingestion by upstream catalog id
// @Description Resolves the numeric id to metadata, then admits the resulting checksum
// @Tags Admission
// @Accept json
// @Produce json
// @Param request body ByOsuIDRequest true "Upstream catalog id"
// @Success 200 {object} AdmissionResponse
// @Failure 400 {object} errorBody
// @Router /api/beatmap/by_osu_id [post]
func (h *Handler) ByOsuID(w http.ResponseWriter, r *http.Request) {
	var req ByOsuIDRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}

	// Legacy quirk, not a real validation failure: a missing/zero id
	// reports HTTP 200 with a string "400" status field.
	if req.ID == 0 {
		writeJSON(w, r, http.StatusOK, AdmissionResponse{Status: "400", Message: "No Id provided"})
		return
	}

	meta, err := h.Gateway.BeatmapByOsuID(r.Context(), req.ID)
	if err != nil {
		internalError(w, r, err)
		return
	}

	if _, err := h.Queue.AddHashes(r.Context(), []string{meta.Beatmap.Checksum}); err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, AdmissionResponse{Status: "200", Message: "admitted to queue"})
}

// Find returns a filtered, paginated slice of the beatmapset catalog.
//
// @Summary Search the beatmapset catalog
// @Description Filters by search term, overall/pattern/BPM/length ranges, paginated
// @Tags Query
// @Produce json
// @Param search_term query string false "Substring match across difficulty/status/artist/title (incl. unicode)/creator"
// @Param overall_min query number false "Minimum overall MSD rating"
// @Param overall_max query number false "Maximum overall MSD rating"
// @Param selected_pattern query string false "Pattern name to filter and range against"
// @Param pattern_min query number false "Minimum selected pattern rating"
// @Param pattern_max query number false "Maximum selected pattern rating"
// @Param bpm_min query number false "Minimum BPM"
// @Param bpm_max query number false "Maximum BPM"
// @Param total_time_min query int false "Minimum chart length in seconds"
// @Param total_time_max query int false "Maximum chart length in seconds"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Results per page" default(10)
// @Success 200 {object} FindResponse
// @Router /api/beatmap [get]
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	f := parseFilters(r.URL.Query())

	beatmaps, err := h.Engine.Find(r.Context(), f)
	if err != nil {
		internalError(w, r, err)
		return
	}
	total, err := h.Engine.Count(r.Context(), f)
	if err != nil {
		internalError(w, r, err)
		return
	}

	perPage := f.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	writeJSON(w, r, http.StatusOK, FindResponse{
		Beatmaps:   beatmaps,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	})
}

// Random returns up to 10 beatmapsets matching the given filters in
// random order.
//
// @Summary Get a random sample of the filtered catalog
// @Tags Query
// @Produce json
// @Success 200 {object} RandomResponse
// @Router /api/beatmap/random [get]
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	f := parseFilters(r.URL.Query())
	beatmaps, err := h.Engine.Random(r.Context(), f)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, RandomResponse{Beatmaps: beatmaps, Count: len(beatmaps)})
}

// Count returns the total number of beatmapsets matching the given
// filters, independent of pagination.
//
// @Summary Count the filtered catalog
// @Tags Query
// @Produce json
// @Success 200 {object} CountResponse
// @Router /api/beatmap/count [get]
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	f := parseFilters(r.URL.Query())
	total, err := h.Engine.Count(r.Context(), f)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, CountResponse{Total: total})
}

// BeatmapsetDetail returns the extended view of a single beatmapset,
// including every difficulty's full MSD vector across the rate grid.
//
// @Summary Get a beatmapset by upstream catalog id
// @Tags Query
// @Produce json
// @Param osu_id path int true "Upstream catalog id"
// @Success 200 {object} BeatmapsetDetailResponse
// @Failure 400 {object} errorBody
// @Failure 404 {object} errorBody
// @Router /api/beatmapset/{osu_id} [get]
func (h *Handler) BeatmapsetDetail(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "osu_id")
	osuID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || osuID <= 0 {
		badRequest(w, r, "osu_id must be a positive integer")
		return
	}

	result, err := h.Engine.ByID(r.Context(), osuID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			notFound(w, r, "beatmapset not found")
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, BeatmapsetDetailResponse{Beatmap: *result})
}

// PendingStatus folds the three terminal-state checks into one of
// {done, failed, pending, unknown} for a given chart checksum.
//
// @Summary Get the ingest status of a checksum
// @Tags Query
// @Produce json
// @Param hash path string true "Chart MD5 checksum"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errorBody
// @Router /api/pending_beatmap/status/{hash} [get]
func (h *Handler) PendingStatus(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	if hash == "" {
		badRequest(w, r, "hash is required")
		return
	}

	done, err := h.Pending.BeatmapExistsByChecksum(r.Context(), hash)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if done {
		writeJSON(w, r, http.StatusOK, StatusResponse{Status: StatusDone})
		return
	}

	failed, err := h.Pending.FailedExistsByHash(r.Context(), hash)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if failed {
		writeJSON(w, r, http.StatusOK, StatusResponse{Status: StatusFailed})
		return
	}

	pending, err := h.Pending.PendingExistsByHash(r.Context(), hash)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if pending {
		writeJSON(w, r, http.StatusOK, StatusResponse{Status: StatusPending})
		return
	}

	writeJSON(w, r, http.StatusOK, StatusResponse{Status: StatusUnknown})
}

// Health reports basic liveness for load balancer probes.
//
// @Summary Health check
// @Tags Core
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
