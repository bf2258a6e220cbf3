// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

// Package chart parses osu! beatmap chart text into a typed hit-object list
// (C1) and normalizes that list into a time-ordered, column-merged note
// stream suitable for the rating engine (C2).
package chart

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ObjectKind distinguishes the two hit-object shapes the rating engine cares
// about. osu!'s type bitflag has many other bits (slider, spinner, new
// combo); mania charts only ever emit circles and holds.
type ObjectKind int

const (
	// KindCircle is a single tap.
	KindCircle ObjectKind = iota
	// KindHold is a long note (hold from start_time to an end time the
	// normalizer does not need — only the head matters for rating).
	KindHold
)

// HitObject is one row of a parsed chart: an x-position (which the
// normalizer maps to a mania column) and a millisecond timestamp.
type HitObject struct {
	XPositionPx int
	StartTimeMs int
	Kind        ObjectKind
}

// holdObjectBit is the osu! hit-object type bitflag identifying a mania
// long note (hold).
const holdObjectBit = 1 << 7

// Error kinds returned by Parse. Callers should use errors.Is against these
// sentinels rather than string-matching.
var (
	// ErrNotMania is returned when the chart's [General] Mode key is present
	// and not equal to 3.
	ErrNotMania = fmt.Errorf("chart: mode is not mania")
	// ErrMalformed is returned for charts missing required sections or
	// containing unparseable hit-object rows.
	ErrMalformed = fmt.Errorf("chart: malformed chart text")
)

// ParseError wraps a sentinel with the offending line for diagnostics while
// still satisfying errors.Is(err, ErrMalformed) / errors.Is(err, ErrNotMania).
type ParseError struct {
	Sentinel error
	Detail   string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return e.Sentinel.Error()
	}
	return fmt.Sprintf("%s: %s", e.Sentinel.Error(), e.Detail)
}

func (e *ParseError) Unwrap() error { return e.Sentinel }

const (
	generalSection     = "[General]"
	hitObjectsSection   = "[HitObjects]"
)

// Parse reads osu! chart text and returns its ordered hit-object list.
// It rejects any chart whose [General] Mode key is present and not 3
// (mania) before attempting to parse hit objects, per spec.md's
// "independent of later content" requirement.
func Parse(content string) ([]HitObject, error) {
	mode, err := readMode(content)
	if err != nil {
		return nil, err
	}
	if mode != -1 && mode != 3 {
		return nil, &ParseError{Sentinel: ErrNotMania}
	}

	objects, err := readHitObjects(content)
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// readMode scans the [General] section for a "Mode:" key. Returns -1 if the
// chart has no Mode key at all (treated as "unknown", not a rejection —
// callers only reject explicit non-mania charts).
func readMode(content string) (int, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	inGeneral := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inGeneral = line == generalSection
			continue
		}
		if !inGeneral {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "Mode" {
			mode, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return 0, &ParseError{Sentinel: ErrMalformed, Detail: "Mode: " + value}
			}
			return mode, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, &ParseError{Sentinel: ErrMalformed, Detail: err.Error()}
	}
	return -1, nil
}

// readHitObjects scans the [HitObjects] section. Each row is a
// comma-separated list: x,y,time,type,hitSound,... (trailing fields vary by
// object kind and are not needed here).
func readHitObjects(content string) ([]HitObject, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	inSection := false
	var objects []HitObject

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inSection = line == hitObjectsSection
			continue
		}
		if !inSection {
			continue
		}

		obj, err := parseHitObjectLine(line)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Sentinel: ErrMalformed, Detail: err.Error()}
	}
	return objects, nil
}

func parseHitObjectLine(line string) (HitObject, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return HitObject{}, &ParseError{Sentinel: ErrMalformed, Detail: line}
	}

	x, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return HitObject{}, &ParseError{Sentinel: ErrMalformed, Detail: line}
	}
	startTime, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return HitObject{}, &ParseError{Sentinel: ErrMalformed, Detail: line}
	}
	typeBits, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return HitObject{}, &ParseError{Sentinel: ErrMalformed, Detail: line}
	}

	kind := KindCircle
	if typeBits&holdObjectBit != 0 {
		kind = KindHold
	}

	return HitObject{XPositionPx: x, StartTimeMs: startTime, Kind: kind}, nil
}
