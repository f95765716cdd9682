// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"strings"
	"testing"

	"github.com/mapavotos/mapavotos/tse"
	"github.com/mapavotos/mapavotos/utils/htmlutils"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// sampleInput is a small sorted table with bands already assigned.
func sampleInput(t *testing.T) *Input {
	t.Helper()

	bands, err := tse.NewBands(tse.DefaultBandBounds)
	require.NoError(t, err)

	ms := []*tse.Municipality{
		{Name: "LAGES", Region: "SC", Votes: 150, Code: "80810"},
		{Name: "FLORIANÓPOLIS", Region: "SC", Votes: 120, Code: "81051"},
		{Name: "INDAIAL", Region: "SC", Votes: 40, Code: "81450"},
		{Name: "JOINVILLE", Region: "SC", Votes: 35, Code: "81795"},
		{Name: "CRICIÚMA", Region: "SC", Votes: 0, Code: "80470", NonNumeric: 1},
	}
	bands.Assign(ms)

	return &Input{
		Election:       "Governador de Santa Catarina 2018",
		Candidate:      "MAURO MARIANI",
		Municipalities: ms,
		Summary:        tse.Summary{Rows: 7, Summed: 6, NonNumeric: 1, Municipalities: 5, TotalVotes: 345},
		Bands:          bands,
	}
}

func parseHTML(t *testing.T, s string) *html.Node {
	t.Helper()

	doc, err := htmlutils.AsNode(strings.NewReader(s))
	require.NoError(t, err)

	return doc
}

// textOf returns the visible text of n and fails on mangled accents.
func textOf(t *testing.T, n *html.Node) string {
	t.Helper()

	var sb strings.Builder
	require.NoError(t, htmlutils.Node2string(n, &sb))

	return sb.String()
}
