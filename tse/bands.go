// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package tse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ZeroBand labels municipalities whose numeric votes add up to exactly zero.
// It sits before every configured band, so each aggregate lands in exactly
// one band.
const ZeroBand = "0"

// DefaultBandBounds are the upper bounds of the closed bands; the last band
// is open ended.
var DefaultBandBounds = []int64{50, 100, 200}

// Band is a right-closed vote range (Lower, Upper]. Upper is zero for the
// open ended last band.
type Band struct {
	Label string
	Lower int64
	Upper int64
}

// Contains reports whether votes falls in the band.
func (b Band) Contains(votes float64) bool {
	if votes <= float64(b.Lower) {
		return false
	}

	return b.Upper == 0 || votes <= float64(b.Upper)
}

// BandCount is the number of municipalities in a band.
type BandCount struct {
	Label string
	Count int
	Votes float64
}

// Bands is an ordered partition of the positive vote counts.
type Bands []Band

// NewBands builds the partition (0,b1], (b1,b2], ..., (bn,∞) from strictly
// increasing positive bounds.
func NewBands(bounds []int64) (Bands, error) {
	if len(bounds) == 0 {
		return nil, errors.New("bands: at least one bound is required")
	}

	ret := make(Bands, 0, len(bounds)+1)

	var lower int64

	for i, upper := range bounds {
		if upper <= lower {
			return nil, fmt.Errorf("bands: bound %d (%d) must be greater than %d", i+1, upper, lower)
		}

		label := fmt.Sprintf("%d-%d", lower+1, upper)
		if lower == 0 {
			label = fmt.Sprintf("0-%d", upper)
		}

		ret = append(ret, Band{Label: label, Lower: lower, Upper: upper})
		lower = upper
	}

	return append(ret, Band{Label: fmt.Sprintf("%d+", lower), Lower: lower}), nil
}

// ParseBounds reads a comma separated list such as "50,100,200".
func ParseBounds(s string) ([]int64, error) {
	var ret []int64

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bands: invalid bound %q: %w", part, err)
		}

		ret = append(ret, n)
	}

	return ret, nil
}

// Classify returns the label of the band holding votes.
func (bs Bands) Classify(votes float64) string {
	if votes <= 0 {
		return ZeroBand
	}

	for _, b := range bs {
		if b.Contains(votes) {
			return b.Label
		}
	}

	// unreachable for bands built by NewBands
	return bs[len(bs)-1].Label
}

// Assign sets the Band of every municipality.
func (bs Bands) Assign(ms []*Municipality) {
	for _, m := range ms {
		m.Band = bs.Classify(m.Votes)
	}
}

// Count tallies municipalities per band, in band order. Every configured band
// is listed even when empty; the zero band only when it has members.
func (bs Bands) Count(ms []*Municipality) []BandCount {
	counts := make(map[string]*BandCount, len(bs)+1)

	ret := make([]BandCount, 0, len(bs)+1)
	zero := &BandCount{Label: ZeroBand}
	counts[ZeroBand] = zero

	for _, b := range bs {
		counts[b.Label] = &BandCount{Label: b.Label}
	}

	for _, m := range ms {
		c := counts[bs.Classify(m.Votes)]
		c.Count++
		c.Votes += m.Votes
	}

	if zero.Count > 0 {
		ret = append(ret, *zero)
	}

	for _, b := range bs {
		ret = append(ret, *counts[b.Label])
	}

	return ret
}
