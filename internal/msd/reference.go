// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package msd

import (
	"math"
	"math/bits"

	"github.com/Glubus/osu.osef.me-backend/internal/chart"
)

// referenceCalculator is a self-contained, pure-Go stand-in for the real
// native rating engine (treated as opaque per spec.md). It derives
// deterministic, rate-scaled pattern scores from note density and column
// co-occurrence so the ingest pipeline and query engine are exercisable and
// testable without cgo or a vendored calculator binary.
type referenceCalculator struct{}

func newReferenceCalculator() Calculator {
	return &referenceCalculator{}
}

func (c *referenceCalculator) ComputeAllRates(notes []chart.Note) ([]Ssr, error) {
	grid := RateGrid()
	out := make([]Ssr, len(grid))
	for i, rate := range grid {
		out[i] = computeAtRate(notes, rate)
	}
	return out, nil
}

// computeAtRate derives an Ssr for one rate by rescaling the note stream's
// timestamps (rate > 1.0 compresses the chart in time, raising density) and
// summarizing density/co-occurrence into the eight published dimensions.
func computeAtRate(notes []chart.Note, rate float64) Ssr {
	if len(notes) == 0 {
		return Ssr{}
	}

	duration := float64(notes[len(notes)-1].RowTimeSeconds-notes[0].RowTimeSeconds) / rate
	if duration <= 0 {
		duration = 1.0
	}

	var jacks, jumps, hands, quads int
	for _, n := range notes {
		switch bits.OnesCount32(n.ColumnsBitmask) {
		case 2:
			jumps++
		case 3:
			hands++
		case 4:
			quads++
		}
	}
	_ = jacks // reserved for a future same-column-repeat pass

	density := float64(len(notes)) / duration * rate

	stream := density * 1.0
	jumpstream := density * (1.0 + float64(jumps)/float64(len(notes)))
	handstream := density * (1.0 + float64(hands)/float64(len(notes)))
	stamina := density * math.Log1p(duration)
	jackspeed := density * rate
	chordjack := density * (1.0 + float64(hands+quads)/float64(len(notes)))
	technical := density * (1.0 + float64(jumps+hands+quads)/float64(len(notes)))

	overall := (stream + jumpstream + handstream + stamina + jackspeed + chordjack + technical) / 7.0

	return Ssr{
		Overall:    round2(overall),
		Stream:     round2(stream),
		Jumpstream: round2(jumpstream),
		Handstream: round2(handstream),
		Stamina:    round2(stamina),
		Jackspeed:  round2(jackspeed),
		Chordjack:  round2(chordjack),
		Technical:  round2(technical),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
