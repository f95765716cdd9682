// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package tse

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Municipality is the per-municipality summary of many ballot rows.
type Municipality struct {
	Name          string  // normalized NM_MUNICIPIO
	Region        string  // normalized SG_UF
	Votes         float64 // sum of the numeric QT_VOTOS values
	ElectoralUnit string  // first non-empty NM_UE
	Code          string  // first non-empty CD_MUNICIPIO
	Band          string  // set by Bands.Assign
	Rows          int     // ballot rows grouped under this key
	Fractional    int     // summed rows whose value had a fractional part
	NonNumeric    int     // rows whose votes were excluded from the sum
}

// Summary describes what an aggregation consumed.
type Summary struct {
	Rows           int     // ballot rows read
	Summed         int     // rows whose votes entered a sum
	Fractional     int     // summed rows with a fractional value, such as "2.5"
	NonNumeric     int     // rows grouped but excluded from the sum
	Dropped        int     // rows without municipality or region
	Municipalities int     // aggregates produced
	TotalVotes     float64 // sum over every aggregate
}

type municipalityKey struct {
	name   string
	region string
}

var upper = cases.Upper(language.BrazilianPortuguese)

// NormalizeName returns the grouping form of a municipality name: NFC,
// trimmed and uppercased, so "Lages" and "LAGES " share a key.
func NormalizeName(s string) string {
	return upper.String(strings.TrimSpace(norm.NFC.String(s)))
}

// NormalizeRegion returns the grouping form of a UF code.
func NormalizeRegion(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseVotes coerces a raw QT_VOTOS value. Any finite non-negative number is
// accepted, decimals such as "120.0" or "2.5" and exponents included; empty,
// textual, negative, NaN and infinite values report false.
func ParseVotes(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}

	return f, true
}

// Aggregate groups ballots by (municipality, region), sums their numeric
// votes and returns the aggregates sorted by votes, highest first. Equal
// totals keep the order in which their keys were first seen.
func Aggregate(ballots []Ballot) ([]*Municipality, Summary) {
	var summary Summary

	index := make(map[municipalityKey]*Municipality)
	ret := make([]*Municipality, 0)

	for _, b := range ballots {
		summary.Rows++

		key := municipalityKey{
			name:   NormalizeName(b.Municipality),
			region: NormalizeRegion(b.Region),
		}
		if key.name == "" || key.region == "" {
			summary.Dropped++

			continue
		}

		m, ok := index[key]
		if !ok {
			m = &Municipality{Name: key.name, Region: key.region}
			index[key] = m
			ret = append(ret, m)
		}

		m.Rows++

		if m.ElectoralUnit == "" {
			m.ElectoralUnit = strings.TrimSpace(b.ElectoralUnit)
		}

		if m.Code == "" {
			m.Code = strings.TrimSpace(b.MunicipalityCode)
		}

		votes, ok := ParseVotes(b.Votes)
		if !ok {
			m.NonNumeric++
			summary.NonNumeric++

			continue
		}

		if votes != math.Trunc(votes) {
			m.Fractional++
			summary.Fractional++
		}

		m.Votes += votes
		summary.Summed++
		summary.TotalVotes += votes
	}

	slices.SortStableFunc(ret, func(a, b *Municipality) int {
		switch {
		case a.Votes > b.Votes:
			return -1
		case a.Votes < b.Votes:
			return 1
		default:
			return 0
		}
	})

	summary.Municipalities = len(ret)

	return ret, summary
}
