// osu.osef.me backend API
// Copyright 2026 Glubus
// SPDX-License-Identifier: MIT
// https://github.com/Glubus/osu.osef.me-backend

package chart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMania4K = `osu file format v14

[General]
AudioFilename: audio.mp3
Mode: 3

[HitObjects]
64,192,1000,1,0,0:0:0:0:
192,192,1000,1,0,0:0:0:0:
320,192,2000,1,0,0:0:0:0:
448,192,3000,128,0,4000:0:0:0:0:
`

func TestParse_ManiaChart(t *testing.T) {
	objs, err := Parse(sampleMania4K)
	require.NoError(t, err)
	require.Len(t, objs, 4)
	assert.Equal(t, 64, objs[0].XPositionPx)
	assert.Equal(t, 1000, objs[0].StartTimeMs)
	assert.Equal(t, KindCircle, objs[0].Kind)
	assert.Equal(t, KindHold, objs[3].Kind)
}

func TestParse_RejectsNonMania(t *testing.T) {
	content := `[General]
Mode: 1

[HitObjects]
64,192,1000,1,0,0:0:0:0:
`
	_, err := Parse(content)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotMania))
}

func TestParse_RejectsNonManiaIndependentOfLaterContent(t *testing.T) {
	content := `[General]
Mode: 0

[HitObjects]
not,a,valid,hitobject,line,at,all
`
	_, err := Parse(content)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotMania))
}

func TestParse_NoModeKeyIsNotRejected(t *testing.T) {
	content := `[General]
AudioFilename: audio.mp3

[HitObjects]
64,192,1000,1,0,0:0:0:0:
`
	objs, err := Parse(content)
	require.NoError(t, err)
	assert.Len(t, objs, 1)
}

func TestParse_MalformedHitObjectLine(t *testing.T) {
	content := `[General]
Mode: 3

[HitObjects]
notanumber,192,1000,1,0
`
	_, err := Parse(content)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}
