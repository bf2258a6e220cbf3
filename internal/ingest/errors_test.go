// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: Download, Hash: "abc", Cause: cause}
	assert.True(t, errors.Is(err, cause))
}

func TestFailureKind_TerminalClassification(t *testing.T) {
	terminal := []FailureKind{UpstreamApi, PolicyRejected, Download, Parse, Normalize, Persist}
	for _, k := range terminal {
		assert.True(t, k.Terminal(), k.String())
	}
	nonTerminal := []FailureKind{AlreadyProcessed, Uninitialized}
	for _, k := range nonTerminal {
		assert.False(t, k.Terminal(), k.String())
	}
}
