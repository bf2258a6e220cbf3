// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdmit_ManiaFourKeyPasses(t *testing.T) {
	assert.True(t, admit(3, 4.0))
}

func TestAdmit_RejectsNonMania(t *testing.T) {
	assert.False(t, admit(0, 4.0))
	assert.False(t, admit(1, 4.0))
	assert.False(t, admit(2, 4.0))
}

func TestAdmit_RejectsNonFourKey(t *testing.T) {
	assert.False(t, admit(3, 7.0))
	assert.False(t, admit(3, 5.0))
}
