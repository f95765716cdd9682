// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	florianopolis = Point{Lat: -27.5954, Lng: -48.5480}
	saoJose       = Point{Lat: -27.6136, Lng: -48.6366}
	lages         = Point{Lat: -27.8161, Lng: -50.3259}
)

func TestHaversineDistance(t *testing.T) {
	assert.InDelta(t, 176_737, florianopolis.HaversineDistance(&lages), 1)
	assert.InDelta(t, 0, lages.HaversineDistance(&lages), 1e-9)
}

func TestPoint_Validate(t *testing.T) {
	assert.NoError(t, lages.Validate())
	assert.Error(t, Point{Lat: 91}.Validate())
	assert.Error(t, Point{Lng: -181}.Validate())
	assert.Error(t, Point{Lat: math.NaN()}.Validate())
}

func TestPoint_Cell(t *testing.T) {
	a, err := florianopolis.Cell(7)
	require.NoError(t, err)

	b, err := lages.Cell(7)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 7, a.Resolution())

	_, err = lages.Cell(16)
	assert.Error(t, err)
}

func TestBinH3(t *testing.T) {
	points := []WeightedPoint{
		{Point: florianopolis, Weight: 10},
		{Point: lages, Weight: 5},
		{Point: florianopolis, Weight: 1},
	}

	binned, err := BinH3(points, 9)
	require.NoError(t, err)
	require.Len(t, binned, 2)

	assert.InDelta(t, 11, binned[0].Weight, 1e-9)
	assert.InDelta(t, 5, binned[1].Weight, 1e-9)
	assert.Less(t, florianopolis.HaversineDistance(&binned[0].Point), 500.0)

	distinct, err := BinH3([]WeightedPoint{{Point: florianopolis}, {Point: saoJose}}, 9)
	require.NoError(t, err)
	assert.Len(t, distinct, 2)

	_, err = BinH3(points, -1)
	assert.Error(t, err)
}

func TestCentroid(t *testing.T) {
	_, ok := Centroid(nil)
	assert.False(t, ok)

	c, ok := Centroid([]Point{{Lat: -10, Lng: -50}, {Lat: -20, Lng: -40}})
	require.True(t, ok)
	assert.Equal(t, Point{Lat: -15, Lng: -45}, c)
}

func TestFitZoom(t *testing.T) {
	points := []Point{florianopolis, lages}
	center, _ := Centroid(points)

	zoom := FitZoom(center, points, 4, 12)
	assert.Equal(t, 8, zoom)

	assert.Equal(t, 12, FitZoom(lages, []Point{lages}, 4, 12))
	assert.Equal(t, 4, FitZoom(Point{}, []Point{{Lat: 60, Lng: 100}}, 4, 12))
}

func TestBounds_Contains(t *testing.T) {
	b := Bounds{MinLat: -30, MaxLat: -25, MinLng: -54, MaxLng: -48}
	assert.True(t, b.Contains(lages))
	assert.False(t, b.Contains(Point{Lat: -23.55, Lng: -46.63}))
}
