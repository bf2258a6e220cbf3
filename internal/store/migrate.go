// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates the five tables the ingest pipeline and query engine
// depend on, plus the unique constraints the persistence contracts (C5)
// rely on: beatmapset.external_catalog_id, beatmap.chart_file_md5,
// pending_beatmap.hash, and msd(beatmap_id, rate).
const schema = `
CREATE TABLE IF NOT EXISTS beatmapset (
	id                  BIGSERIAL PRIMARY KEY,
	external_catalog_id BIGINT NOT NULL UNIQUE,
	artist              TEXT NOT NULL DEFAULT '',
	artist_unicode      TEXT NOT NULL DEFAULT '',
	title               TEXT NOT NULL DEFAULT '',
	title_unicode       TEXT NOT NULL DEFAULT '',
	creator             TEXT NOT NULL DEFAULT '',
	source              TEXT NOT NULL DEFAULT '',
	tags                TEXT NOT NULL DEFAULT '',
	video               BOOLEAN NOT NULL DEFAULT false,
	storyboard          BOOLEAN NOT NULL DEFAULT false,
	explicit            BOOLEAN NOT NULL DEFAULT false,
	featured            BOOLEAN NOT NULL DEFAULT false,
	cover_url           TEXT NOT NULL DEFAULT '',
	preview_url         TEXT NOT NULL DEFAULT '',
	file_url            TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS beatmap (
	id                BIGSERIAL PRIMARY KEY,
	external_id       BIGINT NOT NULL,
	beatmapset_id     BIGINT REFERENCES beatmapset(id) ON DELETE CASCADE,
	difficulty        TEXT NOT NULL DEFAULT '',
	difficulty_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	circle_count      INTEGER NOT NULL DEFAULT 0,
	slider_count      INTEGER NOT NULL DEFAULT 0,
	spinner_count     INTEGER NOT NULL DEFAULT 0,
	max_combo         INTEGER NOT NULL DEFAULT 0,
	drain_time        INTEGER NOT NULL DEFAULT 0,
	total_time        INTEGER NOT NULL DEFAULT 0,
	bpm               DOUBLE PRECISION NOT NULL DEFAULT 0,
	cs                DOUBLE PRECISION NOT NULL DEFAULT 0,
	ar                DOUBLE PRECISION NOT NULL DEFAULT 0,
	od                DOUBLE PRECISION NOT NULL DEFAULT 0,
	hp                DOUBLE PRECISION NOT NULL DEFAULT 0,
	mode              INTEGER NOT NULL DEFAULT 0,
	status            TEXT NOT NULL DEFAULT '',
	chart_file_md5    TEXT NOT NULL UNIQUE,
	chart_file_url    TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_beatmap_beatmapset_id ON beatmap(beatmapset_id);

CREATE TABLE IF NOT EXISTS msd (
	id           BIGSERIAL PRIMARY KEY,
	beatmap_id   BIGINT NOT NULL REFERENCES beatmap(id) ON DELETE CASCADE,
	overall      DOUBLE PRECISION NOT NULL DEFAULT 0,
	stream       DOUBLE PRECISION NOT NULL DEFAULT 0,
	jumpstream   DOUBLE PRECISION NOT NULL DEFAULT 0,
	handstream   DOUBLE PRECISION NOT NULL DEFAULT 0,
	stamina      DOUBLE PRECISION NOT NULL DEFAULT 0,
	jackspeed    DOUBLE PRECISION NOT NULL DEFAULT 0,
	chordjack    DOUBLE PRECISION NOT NULL DEFAULT 0,
	technical    DOUBLE PRECISION NOT NULL DEFAULT 0,
	rate         DOUBLE PRECISION NOT NULL,
	main_pattern TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (beatmap_id, rate)
);

CREATE INDEX IF NOT EXISTS idx_msd_beatmap_id ON msd(beatmap_id);

CREATE TABLE IF NOT EXISTS pending_beatmap (
	id         BIGSERIAL PRIMARY KEY,
	hash       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS failed_query (
	id         BIGSERIAL PRIMARY KEY,
	hash       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// migrate applies the schema idempotently. There is no versioned migration
// chain: the schema is small and additive, so plain CREATE IF NOT EXISTS
// is sufficient.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
