// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package tse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBands(t *testing.T) {
	bands, err := NewBands(DefaultBandBounds)
	require.NoError(t, err)

	assert.Equal(t, Bands{
		{Label: "0-50", Lower: 0, Upper: 50},
		{Label: "51-100", Lower: 50, Upper: 100},
		{Label: "101-200", Lower: 100, Upper: 200},
		{Label: "200+", Lower: 200},
	}, bands)
}

func TestNewBands_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		bounds []int64
	}{
		{"empty", nil},
		{"zero", []int64{0, 10}},
		{"negative", []int64{-5}},
		{"not increasing", []int64{100, 50}},
		{"repeated", []int64{50, 50}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBands(tc.bounds)
			assert.Error(t, err)
		})
	}
}

func TestBands_Classify(t *testing.T) {
	bands, err := NewBands(DefaultBandBounds)
	require.NoError(t, err)

	tests := []struct {
		votes float64
		want  string
	}{
		{0, ZeroBand},
		{0.5, "0-50"},
		{1, "0-50"},
		{50, "0-50"},
		{50.5, "51-100"},
		{51, "51-100"},
		{100, "51-100"},
		{101, "101-200"},
		{200, "101-200"},
		{201, "200+"},
		{1_000_000, "200+"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, bands.Classify(tc.votes), "votes=%v", tc.votes)
	}
}

func TestBands_TotalAndDisjoint(t *testing.T) {
	bands, err := NewBands([]int64{100, 500, 1000, 2000})
	require.NoError(t, err)

	for votes := 0.5; votes <= 2500; votes += 0.5 {
		matches := 0

		for _, b := range bands {
			if b.Contains(votes) {
				matches++
			}
		}

		require.Equal(t, 1, matches, "votes=%v", votes)
	}
}

func TestBands_AssignAndCount(t *testing.T) {
	bands, err := NewBands(DefaultBandBounds)
	require.NoError(t, err)

	ms := []*Municipality{
		{Name: "LAGES", Votes: 150},
		{Name: "VIDEIRA", Votes: 250},
		{Name: "INDAIAL", Votes: 40},
		{Name: "SCHROEDER", Votes: 45},
		{Name: "CRICIÚMA", Votes: 0},
	}

	bands.Assign(ms)

	assert.Equal(t, "101-200", ms[0].Band)
	assert.Equal(t, "200+", ms[1].Band)
	assert.Equal(t, ZeroBand, ms[4].Band)

	assert.Equal(t, []BandCount{
		{Label: ZeroBand, Count: 1, Votes: 0},
		{Label: "0-50", Count: 2, Votes: 85},
		{Label: "51-100", Count: 0, Votes: 0},
		{Label: "101-200", Count: 1, Votes: 150},
		{Label: "200+", Count: 1, Votes: 250},
	}, bands.Count(ms))
}

func TestBands_CountWithoutZero(t *testing.T) {
	bands, err := NewBands([]int64{10})
	require.NoError(t, err)

	got := bands.Count([]*Municipality{{Votes: 3}, {Votes: 30}})
	assert.Equal(t, []BandCount{
		{Label: "0-10", Count: 1, Votes: 3},
		{Label: "10+", Count: 1, Votes: 30},
	}, got)
}

func TestParseBounds(t *testing.T) {
	got, err := ParseBounds("50, 100,200,")
	require.NoError(t, err)
	assert.Equal(t, []int64{50, 100, 200}, got)

	_, err = ParseBounds("50,abc")
	assert.Error(t, err)
}
