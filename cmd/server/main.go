// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Glubus/osu.osef.me-backend/internal/api"
	"github.com/Glubus/osu.osef.me-backend/internal/config"
	"github.com/Glubus/osu.osef.me-backend/internal/ingest"
	"github.com/Glubus/osu.osef.me-backend/internal/logging"
	"github.com/Glubus/osu.osef.me-backend/internal/msd"
	"github.com/Glubus/osu.osef.me-backend/internal/osuapi"
	"github.com/Glubus/osu.osef.me-backend/internal/query"
	"github.com/Glubus/osu.osef.me-backend/internal/queue"
	"github.com/Glubus/osu.osef.me-backend/internal/store"
)

// osuAPIBaseURL and osuAPITokenURL are the real upstream catalog's REST and
// OAuth2 token endpoints. Not configurable: spec.md's OsuApiConfig only
// carries the client credentials, not the endpoint.
const (
	osuAPIBaseURL  = "https://osu.ppy.sh/api/v2"
	osuAPITokenURL = "https://osu.ppy.sh/oauth/token"
)

// shutdownTimeout bounds how long the HTTP server waits for in-flight
// requests to finish during graceful shutdown.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().Str("addr", cfg.Server.Address()).Msg("starting osu.osef.me backend")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.Open(ctx, store.Config{
		DSN:         cfg.Database.URL,
		MinConns:    int32(cfg.Database.MinConnections),
		MaxConns:    int32(cfg.Database.MaxConnections),
		MaxConnIdle: 5 * time.Minute,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open store")
	}
	defer db.Close()
	logging.Info().Msg("store opened and migrated")

	calculator := msd.Singleton()

	apiClient := osuapi.NewClient(osuapi.Config{
		ClientID:     uint64(cfg.OsuAPI.ClientID),
		ClientSecret: cfg.OsuAPI.ClientSecret,
		BaseURL:      osuAPIBaseURL,
		TokenURL:     osuAPITokenURL,
	})
	gateway := osuapi.NewCircuitBreakerClient(apiClient)

	admission := queue.New(db.PendingBeatmaps)

	worker := ingest.NewWorker(ingest.Deps{
		Queue:         admission,
		Gateway:       gateway,
		Downloader:    ingest.NewHTTPChartDownloader(),
		Calculator:    calculator,
		Beatmapsets:   db.Beatmapsets,
		Beatmaps:      db.Beatmaps,
		MSDs:          db.MSDs,
		FailedQueries: db.FailedQueries,
	})

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Run(ctx)
	}()
	logging.Info().Msg("ingest worker started")

	go ingest.RunGC(ctx, db.FailedQueries, cfg.Ingest.FailedQueryRetention)
	logging.Info().Msg("failed_query gc sweep started")

	engine := query.New(db.Pool(), db.Beatmapsets)

	statusLookup := api.NewStatusLookup(db.PendingBeatmaps, db.Beatmaps, db.FailedQueries)

	handler := &api.Handler{
		Queue:   admission,
		Gateway: gateway,
		Engine:  engine,
		Pending: statusLookup,
	}

	router := api.NewRouter(handler, cfg.Cors)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-serverErrCh:
		if err != nil {
			logging.Error().Err(err).Msg("http server failed")
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("http server shutdown did not complete cleanly")
	}

	<-workerDone
	logging.Info().Msg("ingest worker stopped, shutting down")
}
