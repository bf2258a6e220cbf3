// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package ingest

import "fmt"

// FailureKind is the closed taxonomy of ingest-iteration outcomes. Every
// non-success outcome of an iteration maps to exactly one kind.
type FailureKind int

const (
	// AlreadyProcessed means the hash was already resolved (beatmap exists)
	// or already quarantined (failed_query exists). Not a failure: the
	// worker commits the queue removal with no quarantine insert.
	AlreadyProcessed FailureKind = iota
	// UpstreamApi means the metadata lookup (C4) failed: network error,
	// non-2xx response, or quota exhaustion.
	UpstreamApi
	// PolicyRejected means the admission gate (C9) rejected the resolved
	// metadata (not mania, or not 4-key).
	PolicyRejected
	// Download means the chart file HTTP fetch failed.
	Download
	// Parse means C1 reported a malformed or wrong-mode chart.
	Parse
	// Normalize means C2 reported an unsupported column.
	Normalize
	// Persist means C5 returned an error, including the 30s timeout
	// ceiling. Partial persistence is accepted; there is no rollback.
	Persist
	// Uninitialized means the worker ran before its dependencies
	// (calculator, API client, store) were constructed. Fatal.
	Uninitialized
)

func (k FailureKind) String() string {
	switch k {
	case AlreadyProcessed:
		return "already_processed"
	case UpstreamApi:
		return "upstream_api"
	case PolicyRejected:
		return "policy_rejected"
	case Download:
		return "download"
	case Parse:
		return "parse"
	case Normalize:
		return "normalize"
	case Persist:
		return "persist"
	case Uninitialized:
		return "uninitialized"
	default:
		return "unknown"
	}
}

// Error wraps a terminal ingest-iteration outcome with its kind and
// underlying cause, errors.Is/As friendly via Unwrap.
type Error struct {
	Kind  FailureKind
	Hash  string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("ingest: %s: %s", e.Kind, e.Hash)
	}
	return fmt.Sprintf("ingest: %s: %s: %v", e.Kind, e.Hash, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Terminal reports whether this kind ends the iteration with a quarantine
// insert (every kind except AlreadyProcessed and Uninitialized, which have
// their own commit path).
func (k FailureKind) Terminal() bool {
	switch k {
	case UpstreamApi, PolicyRejected, Download, Parse, Normalize, Persist:
		return true
	default:
		return false
	}
}
