// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Glubus/osu.osef.me-backend/internal/chart"
	"github.com/Glubus/osu.osef.me-backend/internal/models"
	"github.com/Glubus/osu.osef.me-backend/internal/msd"
	"github.com/Glubus/osu.osef.me-backend/internal/osuapi"
)

type fakeQueue struct {
	removedIDs []int64
}

func (f *fakeQueue) TakeOne(context.Context) (*models.PendingBeatmap, error) { return nil, nil }
func (f *fakeQueue) Remove(_ context.Context, id int64) error {
	f.removedIDs = append(f.removedIDs, id)
	return nil
}

type fakeGateway struct {
	result *osuapi.BeatmapExtended
	err    error
}

func (f *fakeGateway) BeatmapByChecksum(context.Context, string) (*osuapi.BeatmapExtended, error) {
	return f.result, f.err
}
func (f *fakeGateway) BeatmapByOsuID(context.Context, int64) (*osuapi.BeatmapExtended, error) {
	return f.result, f.err
}

type fakeDownloader struct {
	text string
	err  error
}

func (f *fakeDownloader) Download(context.Context, string) (string, error) { return f.text, f.err }

type fakeCalculator struct{}

func (fakeCalculator) ComputeAllRates(notes []chart.Note) ([]msd.Ssr, error) {
	grid := msd.RateGrid()
	out := make([]msd.Ssr, len(grid))
	for i := range grid {
		out[i] = msd.Ssr{Overall: float64(i)}
	}
	return out, nil
}

type fakeBeatmapsets struct {
	upserted []models.Beatmapset
	nextID   int64
}

func (f *fakeBeatmapsets) Upsert(_ context.Context, b models.Beatmapset) (int64, error) {
	f.upserted = append(f.upserted, b)
	f.nextID++
	return f.nextID, nil
}

type fakeBeatmaps struct {
	exists   bool
	inserted []models.Beatmap
	nextID   int64
}

func (f *fakeBeatmaps) ExistsByChecksum(context.Context, string) (bool, error) { return f.exists, nil }
func (f *fakeBeatmaps) Insert(_ context.Context, b models.Beatmap) (int64, error) {
	f.inserted = append(f.inserted, b)
	f.nextID++
	return f.nextID, nil
}

type fakeMSDs struct {
	inserted []models.MSD
}

func (f *fakeMSDs) Insert(_ context.Context, m models.MSD) (int64, error) {
	f.inserted = append(f.inserted, m)
	return int64(len(f.inserted)), nil
}

type fakeFailedQueries struct {
	exists   bool
	inserted []string
}

func (f *fakeFailedQueries) ExistsByHash(context.Context, string) (bool, error) {
	return f.exists, nil
}
func (f *fakeFailedQueries) Insert(_ context.Context, hash string) error {
	f.inserted = append(f.inserted, hash)
	return nil
}

const sampleManiaChart = `osu file format v14

[General]
Mode: 3

[HitObjects]
64,192,0,1,0,0:0:0:0:
192,192,100,1,0,0:0:0:0:
`

func newTestWorker(t *testing.T, meta *osuapi.BeatmapExtended, chartText string) (*Worker, *fakeQueue, *fakeBeatmapsets, *fakeBeatmaps, *fakeMSDs, *fakeFailedQueries) {
	t.Helper()
	q := &fakeQueue{}
	bs := &fakeBeatmapsets{}
	bm := &fakeBeatmaps{}
	ms := &fakeMSDs{}
	fq := &fakeFailedQueries{}

	w := NewWorker(Deps{
		Queue:         q,
		Gateway:       &fakeGateway{result: meta},
		Downloader:    &fakeDownloader{text: chartText},
		Calculator:    fakeCalculator{},
		Beatmapsets:   bs,
		Beatmaps:      bm,
		MSDs:          ms,
		FailedQueries: fq,
	})
	return w, q, bs, bm, ms, fq
}

func TestRunIteration_SuccessPersistsAllRatesAndCommits(t *testing.T) {
	meta := &osuapi.BeatmapExtended{
		Beatmap:    osuapi.BeatmapDescriptor{ID: 1, Mode: 3, CS: 4.0, Checksum: "H1", URL: "http://chart"},
		Beatmapset: &osuapi.BeatmapsetDescriptor{ID: 10, Artist: "a"},
	}
	w, q, bs, bm, ms, fq := newTestWorker(t, meta, sampleManiaChart)

	pending := models.PendingBeatmap{ID: 5, Hash: "H1"}
	w.runIteration(context.Background(), pending)

	require.Len(t, bs.upserted, 1)
	require.Len(t, bm.inserted, 1)
	assert.Len(t, ms.inserted, 14)
	assert.Equal(t, []int64{5}, q.removedIDs)
	assert.Empty(t, fq.inserted)
}

func TestRunIteration_AlreadyProcessedSkipsWithoutQuarantine(t *testing.T) {
	w, q, _, bm, _, fq := newTestWorker(t, nil, "")
	bm.exists = true

	pending := models.PendingBeatmap{ID: 7, Hash: "dup"}
	w.runIteration(context.Background(), pending)

	assert.Equal(t, []int64{7}, q.removedIDs)
	assert.Empty(t, fq.inserted)
}

func TestRunIteration_QuarantinedHashSkipsWithoutReQuarantine(t *testing.T) {
	w, q, _, _, _, fq := newTestWorker(t, nil, "")
	fq.exists = true

	pending := models.PendingBeatmap{ID: 8, Hash: "poison"}
	w.runIteration(context.Background(), pending)

	assert.Equal(t, []int64{8}, q.removedIDs)
	assert.Empty(t, fq.inserted)
}

func TestRunIteration_PolicyRejectedQuarantines(t *testing.T) {
	meta := &osuapi.BeatmapExtended{Beatmap: osuapi.BeatmapDescriptor{ID: 1, Mode: 3, CS: 7.0, Checksum: "H2"}}
	w, q, bs, bm, _, fq := newTestWorker(t, meta, "")

	pending := models.PendingBeatmap{ID: 2, Hash: "H2"}
	w.runIteration(context.Background(), pending)

	assert.Equal(t, []string{"H2"}, fq.inserted)
	assert.Equal(t, []int64{2}, q.removedIDs)
	assert.Empty(t, bs.upserted)
	assert.Empty(t, bm.inserted)
}

func TestRunIteration_UpstreamApiFailureQuarantines(t *testing.T) {
	q := &fakeQueue{}
	fq := &fakeFailedQueries{}
	w := NewWorker(Deps{
		Queue:         q,
		Gateway:       &fakeGateway{err: errors.New("network unreachable")},
		Downloader:    &fakeDownloader{},
		Calculator:    fakeCalculator{},
		Beatmapsets:   &fakeBeatmapsets{},
		Beatmaps:      &fakeBeatmaps{},
		MSDs:          &fakeMSDs{},
		FailedQueries: fq,
	})

	pending := models.PendingBeatmap{ID: 3, Hash: "down"}
	w.runIteration(context.Background(), pending)

	assert.Equal(t, []string{"down"}, fq.inserted)
	assert.Equal(t, []int64{3}, q.removedIDs)
}

func TestRunIteration_DownloadFailureQuarantines(t *testing.T) {
	meta := &osuapi.BeatmapExtended{Beatmap: osuapi.BeatmapDescriptor{ID: 1, Mode: 3, CS: 4.0, Checksum: "H3"}}
	q := &fakeQueue{}
	fq := &fakeFailedQueries{}
	w := NewWorker(Deps{
		Queue:         q,
		Gateway:       &fakeGateway{result: meta},
		Downloader:    &fakeDownloader{err: errors.New("timeout")},
		Calculator:    fakeCalculator{},
		Beatmapsets:   &fakeBeatmapsets{},
		Beatmaps:      &fakeBeatmaps{},
		MSDs:          &fakeMSDs{},
		FailedQueries: fq,
	})

	pending := models.PendingBeatmap{ID: 4, Hash: "H3"}
	w.runIteration(context.Background(), pending)

	assert.Equal(t, []string{"H3"}, fq.inserted)
	assert.Equal(t, []int64{4}, q.removedIDs)
}

func TestRunIteration_UnsupportedColumnNormalizeFailureQuarantines(t *testing.T) {
	meta := &osuapi.BeatmapExtended{Beatmap: osuapi.BeatmapDescriptor{ID: 1, Mode: 3, CS: 4.0, Checksum: "H4"}}
	badChart := "[General]\nMode: 3\n\n[HitObjects]\n100,192,0,1,0,0:0:0:0:\n"
	w, q, _, _, _, fq := newTestWorker(t, meta, badChart)

	pending := models.PendingBeatmap{ID: 6, Hash: "H4"}
	w.runIteration(context.Background(), pending)

	assert.Equal(t, []string{"H4"}, fq.inserted)
	assert.Equal(t, []int64{6}, q.removedIDs)
}
