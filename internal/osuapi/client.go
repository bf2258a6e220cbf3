// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package osuapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2/clientcredentials"
)

// requestTimeout bounds every outbound upstream-catalog call. spec.md §5
// recommends 10s for the metadata API.
const requestTimeout = 10 * time.Second

// Client is the process-singleton gateway to the external beatmap metadata
// catalog. It must be constructed exactly once with (client_id,
// client_secret) before the first ingest iteration and is thereafter
// immutable and safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Config carries the OAuth2 client-credentials the Client authenticates
// with, plus the catalog's base URL and token endpoint.
type Config struct {
	ClientID     uint64
	ClientSecret string
	BaseURL      string
	TokenURL     string
}

// NewClient constructs the OAuth2 client-credentials gateway. The returned
// Client lazily fetches and refreshes its access token via the standard
// oauth2 transport; callers never handle tokens directly.
func NewClient(cfg Config) *Client {
	oauthCfg := &clientcredentials.Config{
		ClientID:     strconv.FormatUint(cfg.ClientID, 10),
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	return &Client{
		httpClient: oauthCfg.Client(context.Background()),
		baseURL:    cfg.BaseURL,
	}
}

// BeatmapByChecksum resolves a chart MD5 to its upstream metadata.
func (c *Client) BeatmapByChecksum(ctx context.Context, checksum string) (*BeatmapExtended, error) {
	return c.getBeatmap(ctx, fmt.Sprintf("%s/beatmaps/lookup?checksum=%s", c.baseURL, checksum))
}

// BeatmapByOsuID resolves an upstream numeric id to its metadata.
func (c *Client) BeatmapByOsuID(ctx context.Context, id int64) (*BeatmapExtended, error) {
	return c.getBeatmap(ctx, fmt.Sprintf("%s/beatmaps/%d", c.baseURL, id))
}

func (c *Client) getBeatmap(ctx context.Context, url string) (*BeatmapExtended, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ApiError{Message: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ApiError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ApiError{StatusCode: resp.StatusCode, Message: "non-200 response"}
	}

	var extended BeatmapExtended
	if err := json.NewDecoder(resp.Body).Decode(&extended); err != nil {
		return nil, &ApiError{Message: fmt.Sprintf("decode response: %v", err)}
	}
	return &extended, nil
}
