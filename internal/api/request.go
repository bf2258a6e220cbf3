// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package api

import (
	"net/http"

	"github.com/goccy/go-json"
)

// decodeJSON decodes the request body into dst. A missing body (no
// Content-Length, GET-style call) is left as the zero value rather than
// treated as an error — handlers validate required fields themselves.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
