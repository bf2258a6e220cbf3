// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// downloadTimeout bounds the chart-file HTTP fetch per spec.md §5's
// recommended 30s ceiling.
const downloadTimeout = 30 * time.Second

// ChartDownloader fetches chart text by URL. Tests substitute an in-memory
// fake instead of issuing a real HTTP request.
type ChartDownloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// httpChartDownloader is the production ChartDownloader over net/http.
type httpChartDownloader struct {
	client *http.Client
}

// NewHTTPChartDownloader returns a ChartDownloader backed by a default
// http.Client.
func NewHTTPChartDownloader() ChartDownloader {
	return &httpChartDownloader{client: &http.Client{}}
}

func (d *httpChartDownloader) Download(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("ingest: build chart request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ingest: fetch chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ingest: chart fetch status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ingest: read chart body: %w", err)
	}
	return string(body), nil
}
