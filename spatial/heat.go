// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"fmt"
	"math"

	"github.com/uber/h3-go/v4"
)

// WeightedPoint is a heat map sample.
type WeightedPoint struct {
	Point
	Weight float64 `json:"weight"`
}

// BinH3 merges samples sharing an H3 cell at res into one sample placed on
// the cell center, summing their weights. Output follows the order in which
// each cell was first seen.
func BinH3(points []WeightedPoint, res int) ([]WeightedPoint, error) {
	index := make(map[h3.Cell]int, len(points))
	ret := make([]WeightedPoint, 0, len(points))

	for _, p := range points {
		cell, err := p.Cell(res)
		if err != nil {
			return nil, err
		}

		if i, ok := index[cell]; ok {
			ret[i].Weight += p.Weight

			continue
		}

		center, err := h3.CellToLatLng(cell)
		if err != nil {
			return nil, fmt.Errorf("spatial: center of cell %s: %w", cell, err)
		}

		index[cell] = len(ret)
		ret = append(ret, WeightedPoint{
			Point:  Point{Lat: center.Lat, Lng: center.Lng},
			Weight: p.Weight,
		})
	}

	return ret, nil
}

// Centroid returns the arithmetic mean of the points. It reports false for
// an empty slice.
func Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}

	var c Point

	for _, p := range points {
		c.Lat += p.Lat
		c.Lng += p.Lng
	}

	n := float64(len(points))

	return Point{Lat: c.Lat / n, Lng: c.Lng / n}, true
}

// FitZoom picks a web map zoom level that keeps every point within view of
// center, clamped to [minZoom, maxZoom].
func FitZoom(center Point, points []Point, minZoom, maxZoom int) int {
	var spread float64

	for i := range points {
		if d := center.HaversineDistance(&points[i]); d > spread {
			spread = d
		}
	}

	if spread == 0 {
		return maxZoom
	}

	// a 256px tile spans the equator at zoom 0 and each level halves it; a
	// ~1000px viewport (four tiles) must hold twice the spread.
	zoom := int(math.Floor(math.Log2(2 * math.Pi * earthRadius / spread)))

	return max(minZoom, min(maxZoom, zoom))
}
