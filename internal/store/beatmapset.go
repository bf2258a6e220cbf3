// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Glubus/osu.osef.me-backend/internal/models"
)

// BeatmapsetStore is the typed CRUD surface over the beatmapset table.
type BeatmapsetStore struct {
	pool *pgxpool.Pool
}

// Upsert inserts by external_catalog_id; on conflict it updates every
// mutable column and bumps updated_at. Returns the surrogate id either way.
func (s *BeatmapsetStore) Upsert(ctx context.Context, b models.Beatmapset) (int64, error) {
	const query = `
		INSERT INTO beatmapset (
			external_catalog_id, artist, artist_unicode, title, title_unicode,
			creator, source, tags, video, storyboard, explicit, featured,
			cover_url, preview_url, file_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (external_catalog_id) DO UPDATE SET
			artist         = EXCLUDED.artist,
			artist_unicode = EXCLUDED.artist_unicode,
			title          = EXCLUDED.title,
			title_unicode  = EXCLUDED.title_unicode,
			creator        = EXCLUDED.creator,
			source         = EXCLUDED.source,
			tags           = EXCLUDED.tags,
			video          = EXCLUDED.video,
			storyboard     = EXCLUDED.storyboard,
			explicit       = EXCLUDED.explicit,
			featured       = EXCLUDED.featured,
			cover_url      = EXCLUDED.cover_url,
			preview_url    = EXCLUDED.preview_url,
			file_url       = EXCLUDED.file_url,
			updated_at     = now()
		RETURNING id`

	var id int64
	err := s.pool.QueryRow(ctx, query,
		b.ExternalCatalogID, b.Artist, b.ArtistUnicode, b.Title, b.TitleUnicode,
		b.Creator, b.Source, b.Tags, b.Video, b.Storyboard, b.Explicit, b.Featured,
		b.CoverURL, b.PreviewURL, b.FileURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: upsert beatmapset: %w", err)
	}
	return id, nil
}

// ByExternalCatalogID looks up a beatmapset by its upstream id, the lookup
// the by-id query mode (C8) uses before fetching child beatmaps.
func (s *BeatmapsetStore) ByExternalCatalogID(ctx context.Context, externalCatalogID int64) (*models.Beatmapset, error) {
	const query = `
		SELECT id, external_catalog_id, artist, artist_unicode, title, title_unicode,
			creator, source, tags, video, storyboard, explicit, featured,
			cover_url, preview_url, file_url, created_at, updated_at
		FROM beatmapset
		WHERE external_catalog_id = $1`

	var b models.Beatmapset
	err := s.pool.QueryRow(ctx, query, externalCatalogID).Scan(
		&b.ID, &b.ExternalCatalogID, &b.Artist, &b.ArtistUnicode, &b.Title, &b.TitleUnicode,
		&b.Creator, &b.Source, &b.Tags, &b.Video, &b.Storyboard, &b.Explicit, &b.Featured,
		&b.CoverURL, &b.PreviewURL, &b.FileURL, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("store: beatmapset by external catalog id: %w", mapNoRows(err))
	}
	return &b, nil
}
