// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

// Package report renders the aggregated votes as a heat map, two charts and
// a text report.
package report

import (
	"github.com/mapavotos/mapavotos/tse"
)

// Output file names, in the order Emit writes them.
const (
	HeatMapFile  = "mapa_calor_votacoes.html"
	BarChartFile = "grafico_barras_votacoes.html"
	PieChartFile = "grafico_pizza_votacoes.html"
	TextFile     = "relatorio_votacoes.txt"
)

// Input is the finished table handed to the emitter. Municipalities must be
// sorted by votes, largest first, with bands already assigned.
type Input struct {
	Election       string
	Candidate      string
	Municipalities []*tse.Municipality
	Summary        tse.Summary
	Bands          tse.Bands
}

func (in *Input) title(what string) string {
	if in.Candidate == "" {
		return what
	}

	return what + " - " + in.Candidate
}

// top returns the n largest municipalities, all of them when n <= 0.
func top(ms []*tse.Municipality, n int) []*tse.Municipality {
	if n <= 0 || n >= len(ms) {
		return ms
	}

	return ms[:n]
}
