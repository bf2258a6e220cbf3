// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package chart

import (
	"fmt"
	"sort"
)

// Note is a single row in the normalized stream the rating engine consumes:
// a timestamp in seconds and a bitmask of the mania columns struck at that
// time.
type Note struct {
	RowTimeSeconds float32
	ColumnsBitmask uint32
}

// ErrUnsupportedColumn is returned when a hit-object's x-position does not
// map to one of the four mania columns.
var ErrUnsupportedColumn = fmt.Errorf("chart: unsupported column")

// columnBit maps a 4-key mania x-position (in osu! pixels) to its column
// bit. Any other x-position indicates a map with more or fewer than four
// columns, which is rejected rather than guessed at.
var columnBit = map[int]uint32{
	64:  1 << 0,
	192: 1 << 1,
	320: 1 << 2,
	448: 1 << 3,
}

// Normalize converts a parsed hit-object list into a time-ordered,
// column-merged Note stream:
//
//  1. map each x-position to a column bit (UnsupportedColumn on miss)
//  2. convert start_time_ms to seconds
//  3. stable-sort by row time ascending
//  4. fold hit-objects sharing a row time into one Note via bitwise OR
//  5. drop rows with negative normalized time
//
// An empty input yields an empty, non-error result; rejecting an empty
// stream (if desired) is the rating adapter's responsibility.
func Normalize(objects []HitObject) ([]Note, error) {
	raw := make([]Note, 0, len(objects))
	for _, obj := range objects {
		bit, ok := columnBit[obj.XPositionPx]
		if !ok {
			return nil, &ParseError{Sentinel: ErrUnsupportedColumn, Detail: fmt.Sprintf("x=%d", obj.XPositionPx)}
		}
		raw = append(raw, Note{
			RowTimeSeconds: float32(obj.StartTimeMs) / 1000.0,
			ColumnsBitmask: bit,
		})
	}

	sort.SliceStable(raw, func(i, j int) bool {
		return raw[i].RowTimeSeconds < raw[j].RowTimeSeconds
	})

	notes := make([]Note, 0, len(raw))
	var current *Note
	for i := range raw {
		n := raw[i]
		if current != nil && current.RowTimeSeconds == n.RowTimeSeconds {
			current.ColumnsBitmask |= n.ColumnsBitmask
			continue
		}
		if current != nil {
			notes = append(notes, *current)
		}
		cp := n
		current = &cp
	}
	if current != nil {
		notes = append(notes, *current)
	}

	filtered := notes[:0]
	for _, n := range notes {
		if n.RowTimeSeconds < 0 {
			continue
		}
		filtered = append(filtered, n)
	}
	return filtered, nil
}
