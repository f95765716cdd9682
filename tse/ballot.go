// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

// Package tse reads TSE electoral result extracts and shapes them into
// per-municipality aggregates.
package tse

import (
	"fmt"
	"strings"
)

// Column names of a TSE "votação" extract.
const (
	ColMunicipality     = "NM_MUNICIPIO"
	ColRegion           = "SG_UF"
	ColElectoralUnit    = "NM_UE"
	ColMunicipalityCode = "CD_MUNICIPIO"
	ColVotes            = "QT_VOTOS"
)

// RequiredColumns lists the header names a source file must carry.
var RequiredColumns = []string{
	ColMunicipality,
	ColRegion,
	ColElectoralUnit,
	ColMunicipalityCode,
	ColVotes,
}

// Ballot is one line of the source extract, exactly as read.
type Ballot struct {
	Municipality     string
	Region           string
	ElectoralUnit    string
	MunicipalityCode string
	Votes            string // raw QT_VOTOS, may be empty or non numeric
}

// FormatError reports a source file that does not follow the expected schema.
type FormatError struct {
	Line    int // 1-based, 0 when the problem is not tied to a line
	Column  string
	Message string
}

func (e *FormatError) Error() string {
	var sb strings.Builder

	sb.WriteString("invalid data format")

	if e.Line > 0 {
		fmt.Fprintf(&sb, " at line %d", e.Line)
	}

	if e.Column != "" {
		fmt.Fprintf(&sb, " (column %s)", e.Column)
	}

	sb.WriteString(": ")
	sb.WriteString(e.Message)

	return sb.String()
}

// schema maps each required column to its position in a record.
type schema struct {
	municipality, region, electoralUnit, code, votes int
	width                                            int
}

func newSchema(header []string) (*schema, error) {
	pos := make(map[string]int, len(header))

	for i, h := range header {
		h = strings.ToUpper(strings.TrimSpace(h))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	for _, c := range RequiredColumns {
		if _, ok := pos[c]; !ok {
			return nil, &FormatError{Line: 1, Column: c, Message: "missing required column"}
		}
	}

	return &schema{
		municipality:  pos[ColMunicipality],
		region:        pos[ColRegion],
		electoralUnit: pos[ColElectoralUnit],
		code:          pos[ColMunicipalityCode],
		votes:         pos[ColVotes],
		width:         len(header),
	}, nil
}

func (s *schema) ballot(record []string) Ballot {
	return Ballot{
		Municipality:     record[s.municipality],
		Region:           record[s.region],
		ElectoralUnit:    record[s.electoralUnit],
		MunicipalityCode: record[s.code],
		Votes:            record[s.votes],
	}
}
