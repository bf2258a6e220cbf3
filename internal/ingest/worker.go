// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

// Package ingest is the single-threaded fetch-classify-gate-download-parse-
// normalize-rate-persist state machine (C7) plus the admission gate (C9).
// Exactly one Worker runs per process; it is constructed with every
// dependency already injected as an immutable field, per spec.md §9's
// "no Option<DatabaseManager> behind a mutex" guidance.
package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Glubus/osu.osef.me-backend/internal/chart"
	"github.com/Glubus/osu.osef.me-backend/internal/logging"
	"github.com/Glubus/osu.osef.me-backend/internal/models"
	"github.com/Glubus/osu.osef.me-backend/internal/msd"
	"github.com/Glubus/osu.osef.me-backend/internal/osuapi"
)

// idleSleep is the pause taken when the pending queue is empty, bounding
// how often the worker polls the database.
const idleSleep = 10 * time.Second

// persistTimeout is the total budget given to the C5 persist step.
const persistTimeout = 30 * time.Second

// PendingQueue is the subset of queue.Queue the worker depends on.
type PendingQueue interface {
	TakeOne(ctx context.Context) (*models.PendingBeatmap, error)
	Remove(ctx context.Context, id int64) error
}

// BeatmapsetUpserter is the subset of store.BeatmapsetStore the worker
// depends on.
type BeatmapsetUpserter interface {
	Upsert(ctx context.Context, b models.Beatmapset) (int64, error)
}

// BeatmapPersister is the subset of store.BeatmapStore the worker depends
// on.
type BeatmapPersister interface {
	ExistsByChecksum(ctx context.Context, checksum string) (bool, error)
	Insert(ctx context.Context, b models.Beatmap) (int64, error)
}

// MSDPersister is the subset of store.MSDStore the worker depends on.
type MSDPersister interface {
	Insert(ctx context.Context, m models.MSD) (int64, error)
}

// FailedQueries is the subset of store.FailedQueryStore the worker depends
// on.
type FailedQueries interface {
	ExistsByHash(ctx context.Context, hash string) (bool, error)
	Insert(ctx context.Context, hash string) error
}

// Worker drives one ingest iteration at a time. All fields are immutable
// after construction; there is no mutable shared state and no locking.
type Worker struct {
	queue         PendingQueue
	gateway       osuapi.Gateway
	downloader    ChartDownloader
	calculator    msd.Calculator
	beatmapsets   BeatmapsetUpserter
	beatmaps      BeatmapPersister
	msds          MSDPersister
	failedQueries FailedQueries

	successLimiter *rate.Limiter
}

// Deps bundles every dependency the worker needs, constructed once at
// process start.
type Deps struct {
	Queue         PendingQueue
	Gateway       osuapi.Gateway
	Downloader    ChartDownloader
	Calculator    msd.Calculator
	Beatmapsets   BeatmapsetUpserter
	Beatmaps      BeatmapPersister
	MSDs          MSDPersister
	FailedQueries FailedQueries
}

// NewWorker constructs the worker. The 500ms post-success pacing is
// expressed as a rate.Limiter with burst 1, matching the teacher's
// golang.org/x/time dependency rather than a raw time.Sleep.
func NewWorker(deps Deps) *Worker {
	return &Worker{
		queue:          deps.Queue,
		gateway:        deps.Gateway,
		downloader:     deps.Downloader,
		calculator:     deps.Calculator,
		beatmapsets:    deps.Beatmapsets,
		beatmaps:       deps.Beatmaps,
		msds:           deps.MSDs,
		failedQueries:  deps.FailedQueries,
		successLimiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// Run executes the worker's outer loop until ctx is cancelled. It performs
// the conservative startup sweep first (see sweepOnStartup), then repeatedly takes
// the oldest pending row and drives it to a terminal state.
func (w *Worker) Run(ctx context.Context) {
	w.sweepOnStartup(ctx)

	for {
		if ctx.Err() != nil {
			return
		}

		pending, err := w.queue.TakeOne(ctx)
		if err != nil {
			logging.Error().Err(err).Msg("ingest: take pending beatmap failed")
			if !w.sleepIdle(ctx) {
				return
			}
			continue
		}

		if pending == nil {
			if !w.sleepIdle(ctx) {
				return
			}
			continue
		}

		w.runIteration(ctx, *pending)
	}
}

// sweepOnStartup discards exactly one pending row without processing it.
// This clears any in-flight item that survived a prior crash between
// metadata fetch and commit, preventing an indefinite retry loop on a
// poison input. Conservative by design (spec.md §9 Open Question: the
// attempt-counting alternative is not implemented).
func (w *Worker) sweepOnStartup(ctx context.Context) {
	pending, err := w.queue.TakeOne(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("ingest: startup sweep take failed")
		return
	}
	if pending == nil {
		return
	}
	if err := w.queue.Remove(ctx, pending.ID); err != nil {
		logging.Warn().Err(err).Int64("pending_id", pending.ID).Msg("ingest: startup sweep remove failed")
	}
}

// sleepIdle waits idleSleep or until ctx is cancelled; returns false if the
// wait was cut short by cancellation.
func (w *Worker) sleepIdle(ctx context.Context) bool {
	timer := time.NewTimer(idleSleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// runIteration drives one pending row through Classify→Fetch→Gate→Download→
// Parse→Normalize→Rate→Persist→Commit, exactly per the state machine in
// spec.md §4.7.
func (w *Worker) runIteration(ctx context.Context, pending models.PendingBeatmap) {
	iterationID := uuid.NewString()
	log := logging.With().Str("iteration_id", iterationID).Str("hash", pending.Hash).Logger()

	skip, err := w.classify(ctx, pending.Hash)
	if err != nil {
		log.Error().Err(err).Msg("ingest: classify failed")
		w.failTerminal(ctx, pending, &Error{Kind: Persist, Hash: pending.Hash, Cause: err})
		return
	}
	if skip {
		log.Info().Msg("ingest: already processed, skipping")
		if err := w.queue.Remove(ctx, pending.ID); err != nil {
			log.Error().Err(err).Msg("ingest: commit skip failed")
		}
		return
	}

	meta, err := w.gateway.BeatmapByChecksum(ctx, pending.Hash)
	if err != nil {
		log.Warn().Err(err).Msg("ingest: upstream metadata lookup failed")
		w.failTerminal(ctx, pending, &Error{Kind: UpstreamApi, Hash: pending.Hash, Cause: err})
		return
	}

	if !admit(meta.Beatmap.Mode, meta.Beatmap.CS) {
		log.Warn().Int32("mode", meta.Beatmap.Mode).Float64("cs", meta.Beatmap.CS).Msg("ingest: rejected by admission gate")
		w.failTerminal(ctx, pending, &Error{Kind: PolicyRejected, Hash: pending.Hash})
		return
	}

	chartText, err := w.downloader.Download(ctx, meta.ChartFileURL())
	if err != nil {
		log.Warn().Err(err).Msg("ingest: chart download failed")
		w.failTerminal(ctx, pending, &Error{Kind: Download, Hash: pending.Hash, Cause: err})
		return
	}

	objects, err := chart.Parse(chartText)
	if err != nil {
		log.Warn().Err(err).Msg("ingest: chart parse failed")
		w.failTerminal(ctx, pending, &Error{Kind: Parse, Hash: pending.Hash, Cause: err})
		return
	}

	notes, err := chart.Normalize(objects)
	if err != nil {
		log.Warn().Err(err).Msg("ingest: note normalization failed")
		w.failTerminal(ctx, pending, &Error{Kind: Normalize, Hash: pending.Hash, Cause: err})
		return
	}

	persistCtx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	if err := w.persist(persistCtx, meta, notes); err != nil {
		log.Error().Err(err).Msg("ingest: persist failed")
		w.failTerminal(ctx, pending, &Error{Kind: Persist, Hash: pending.Hash, Cause: err})
		return
	}

	if err := w.queue.Remove(ctx, pending.ID); err != nil {
		log.Error().Err(err).Msg("ingest: commit failed")
		return
	}

	log.Info().Msg("ingest: iteration committed")
	_ = w.successLimiter.Wait(ctx)
}

// classify reports whether this hash is already terminal: present in
// failed_query (quarantined) or already has a persisted beatmap row.
func (w *Worker) classify(ctx context.Context, hash string) (bool, error) {
	quarantined, err := w.failedQueries.ExistsByHash(ctx, hash)
	if err != nil {
		return false, err
	}
	if quarantined {
		return true, nil
	}
	return w.beatmaps.ExistsByChecksum(ctx, hash)
}

// persist writes the beatmapset (upsert), the beatmap (insert), and every
// MSD rate row (insert). Per spec.md §7, partial persistence on error is
// accepted — there is no rollback.
func (w *Worker) persist(ctx context.Context, meta *osuapi.BeatmapExtended, notes []chart.Note) error {
	var beatmapsetID *int64
	if meta.Beatmapset != nil {
		id, err := w.beatmapsets.Upsert(ctx, beatmapsetFromDescriptor(*meta.Beatmapset))
		if err != nil {
			return err
		}
		beatmapsetID = &id
	}

	bm := beatmapFromDescriptor(meta.Beatmap, beatmapsetID)
	beatmapID, err := w.beatmaps.Insert(ctx, bm)
	if err != nil {
		return err
	}

	records, err := msd.Compute(w.calculator, beatmapID, notes)
	if err != nil {
		return err
	}
	for _, record := range records {
		if _, err := w.msds.Insert(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// failTerminal quarantines the hash and removes it from the pending queue.
// No sleep follows a terminal failure: the worker proceeds to the next
// pending row immediately, since no outbound API rate budget was consumed
// of interest on the failure paths.
func (w *Worker) failTerminal(ctx context.Context, pending models.PendingBeatmap, cause error) {
	var ingestErr *Error
	if !errors.As(cause, &ingestErr) {
		ingestErr = &Error{Kind: Persist, Hash: pending.Hash, Cause: cause}
	}

	if err := w.failedQueries.Insert(ctx, pending.Hash); err != nil {
		logging.Error().Err(err).Str("hash", pending.Hash).Msg("ingest: failed to quarantine hash")
	}
	if err := w.queue.Remove(ctx, pending.ID); err != nil {
		logging.Error().Err(err).Str("hash", pending.Hash).Msg("ingest: failed to remove quarantined hash from queue")
	}
	logging.Warn().Str("kind", ingestErr.Kind.String()).Str("hash", pending.Hash).Msg("ingest: iteration terminated")
}
