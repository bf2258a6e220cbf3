// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package store

import (
	"errors"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "dial tcp: timeout" }
func (fakeNetError) Timeout() bool   { return true }
func (fakeNetError) Temporary() bool { return true }

func TestIsConnectionError(t *testing.T) {
	assert.True(t, isConnectionError(fakeNetError{}))
	assert.True(t, isConnectionError(&pgconn.PgError{Code: "08006"}))
	assert.False(t, isConnectionError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isConnectionError(errors.New("boom")))
	assert.False(t, isConnectionError(nil))
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, isSerializationFailure(&pgconn.PgError{Code: "40001"}))
	assert.False(t, isSerializationFailure(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isSerializationFailure(errors.New("boom")))
}

var _ net.Error = fakeNetError{}
