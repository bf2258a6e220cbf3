// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package ingest

import "github.com/Glubus/osu.osef.me-backend/internal/models"

// admit is the admission controller (C9): a pure policy gate over upstream
// metadata. Only 4-key mania charts pass; every other combination is a
// terminal PolicyRejected failure.
func admit(mode int32, cs float64) bool {
	return mode == models.ManiaMode && cs == models.RequiredKeyCount
}
