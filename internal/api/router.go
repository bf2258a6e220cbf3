// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/Glubus/osu.osef.me-backend/internal/config"
	"github.com/Glubus/osu.osef.me-backend/internal/middleware"
)

// admissionRateLimit caps each IP's admission calls — a defensive layer on
// top of the 50-hash admission cap, not a spec requirement.
const admissionRateLimit = 30

// adaptRequestID lets the existing http.HandlerFunc-shaped RequestID
// middleware plug into Chi's func(http.Handler) http.Handler convention.
func adaptRequestID(next http.Handler) http.Handler {
	return middleware.RequestID(next.ServeHTTP)
}

// NewRouter assembles the full HTTP surface described in spec.md §6 behind
// Chi's router, with CORS sourced from cfg and per-IP rate limiting on the
// two admission endpoints.
func NewRouter(h *Handler, cfg config.CorsConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(adaptRequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: cfg.AllowedMethods,
		AllowedHeaders: cfg.AllowedHeaders,
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/beatmap", func(r chi.Router) {
			r.With(httprate.LimitByIP(admissionRateLimit, time.Minute)).Post("/batch", h.Batch)
			r.With(httprate.LimitByIP(admissionRateLimit, time.Minute)).Post("/by_osu_id", h.ByOsuID)
			r.Get("/", h.Find)
			r.Get("/random", h.Random)
			r.Get("/count", h.Count)
		})
		r.Get("/beatmapset/{osu_id}", h.BeatmapsetDetail)
		r.Get("/pending_beatmap/status/{hash}", h.PendingStatus)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	return r
}
