// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package osuapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test-token","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/beatmaps/lookup", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
	mux.HandleFunc("/beatmaps/123", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestBeatmapByChecksum_Success(t *testing.T) {
	body := `{"beatmap":{"id":1,"mode_int":3,"accuracy":8,"checksum":"abc"},"beatmapset":{"id":2,"artist":"a"}}`
	server := newTestServer(t, http.StatusOK, body)

	client := NewClient(Config{ClientID: 1, ClientSecret: "secret", BaseURL: server.URL, TokenURL: server.URL + "/oauth/token"})
	result, err := client.BeatmapByChecksum(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Beatmap.ID)
	assert.Equal(t, "abc", result.Beatmap.Checksum)
	require.NotNil(t, result.Beatmapset)
	assert.Equal(t, int64(2), result.Beatmapset.ID)
}

func TestBeatmapByChecksum_NonOKStatus(t *testing.T) {
	server := newTestServer(t, http.StatusNotFound, `{}`)
	client := NewClient(Config{ClientID: 1, ClientSecret: "secret", BaseURL: server.URL, TokenURL: server.URL + "/oauth/token"})

	_, err := client.BeatmapByChecksum(context.Background(), "missing")
	require.Error(t, err)
	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestBeatmapByOsuID_Success(t *testing.T) {
	body := `{"beatmap":{"id":123,"mode_int":3}}`
	server := newTestServer(t, http.StatusOK, body)
	client := NewClient(Config{ClientID: 1, ClientSecret: "secret", BaseURL: server.URL, TokenURL: server.URL + "/oauth/token"})

	result, err := client.BeatmapByOsuID(context.Background(), 123)
	require.NoError(t, err)
	assert.Equal(t, int64(123), result.Beatmap.ID)
}
