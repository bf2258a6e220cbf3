// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package store

import (
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation,
// the case the ON CONFLICT clauses in this package are built to avoid ever
// surfacing to a caller in the first place.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// isConnectionError reports whether err indicates the pool lost its
// connection to Postgres rather than the query itself being rejected.
// Adapted from the same connection-vs-query error split the prior engine
// used, against pgconn's network-failure classification instead of string
// matching on a database/sql driver error.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 - Connection Exception
		return len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08"
	}
	return false
}

// isSerializationFailure reports whether err is a transaction conflict
// under higher isolation levels (class 40 - Transaction Rollback).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return len(pgErr.Code) >= 2 && pgErr.Code[:2] == "40"
}
