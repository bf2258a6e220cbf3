// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

// Package msd wraps the opaque Mina-Skillset Difficulty rating engine (C3):
// a long-lived, expensive-to-construct calculator invoked once per ingest
// across a fixed grid of time-scale rates.
package msd

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/Glubus/osu.osef.me-backend/internal/chart"
)

// Ssr is one rating snapshot: the overall rating plus the seven pattern
// dimensions the engine scores a note stream against.
type Ssr struct {
	Overall    float64
	Stream     float64
	Jumpstream float64
	Handstream float64
	Stamina    float64
	Jackspeed  float64
	Chordjack  float64
	Technical  float64
}

// Calculator is the opaque native rating engine. Implementations are not
// required to be re-entrant-safe to construct repeatedly — callers obtain
// one via Singleton and share it read-only.
type Calculator interface {
	// ComputeAllRates returns one Ssr per entry of RateGrid, in the same
	// order, for the given note stream.
	ComputeAllRates(notes []chart.Note) ([]Ssr, error)
}

// RateGrid returns the deterministic, ordered list of time-scale rates the
// engine is invoked across: rate[i] = 0.7 + 0.1*i for i in [0, 13]. This is
// an external contract with downstream consumers of MSD vectors and must
// not be reordered or resized silently.
func RateGrid() []float64 {
	grid := make([]float64, 14)
	for i := range grid {
		grid[i] = 0.7 + 0.1*float64(i)
	}
	return grid
}

var (
	once     sync.Once
	instance Calculator
)

// Singleton returns the process-wide Calculator instance, constructing it
// exactly once on first call. Concurrent callers racing the first access
// all observe the same fully-constructed instance.
func Singleton() Calculator {
	once.Do(func() {
		instance = newReferenceCalculator()
	})
	return instance
}

// patternNames is the declaration order used to break ties when deriving
// MainPattern: stream, jumpstream, handstream, stamina, jackspeed,
// chordjack, technical.
var patternNames = []string{
	"stream", "jumpstream", "handstream", "stamina", "jackspeed", "chordjack", "technical",
}

func patternValues(s Ssr) []float64 {
	return []float64{s.Stream, s.Jumpstream, s.Handstream, s.Stamina, s.Jackspeed, s.Chordjack, s.Technical}
}

// MainPattern derives the top-two-rated pattern names for a snapshot,
// sorted descending by rating with a stable declaration-order tie-break,
// serialized as a two-element JSON array of strings.
func MainPattern(s Ssr) (string, error) {
	type named struct {
		name   string
		rating float64
		order  int
	}
	values := patternValues(s)
	entries := make([]named, len(patternNames))
	for i, name := range patternNames {
		entries[i] = named{name: name, rating: values[i], order: i}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].rating > entries[j].rating
	})

	top := []string{entries[0].name, entries[1].name}
	encoded, err := json.Marshal(top)
	if err != nil {
		return "", fmt.Errorf("msd: encode main_pattern: %w", err)
	}
	return string(encoded), nil
}
