// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	barChartID = "grafico_barras"
	pieChartID = "grafico_pizza"
)

// WriteBarChart writes a horizontal bar chart of votes per municipality,
// largest at the top. topN limits the bars, 0 draws every municipality.
func WriteBarChart(w io.Writer, in *Input, topN int) error {
	// the category axis grows upwards, so feed it smallest first
	ms := slices.Clone(top(in.Municipalities, topN))
	slices.Reverse(ms)

	names := make([]string, 0, len(ms))
	data := make([]opts.BarData, 0, len(ms))

	for _, m := range ms {
		names = append(names, m.Name)
		data = append(data, opts.BarData{Name: m.Name, Value: m.Votes})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Votos por Município",
			ChartID:   barChartID,
			Width:     "1000px",
			Height:    fmt.Sprintf("%dpx", max(500, 22*len(ms))),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    in.title("Votos por Município"),
			Subtitle: in.Election,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Número de Votos"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Município"}),
	)
	bar.SetXAxis(names).AddSeries("Votos", data)
	bar.XYReversal()

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("rendering bar chart: %w", err)
	}

	return nil
}

// WriteBandPieChart writes a pie chart with the number of municipalities in
// each band. Empty bands are left out of the pie.
func WriteBandPieChart(w io.Writer, in *Input) error {
	var data []opts.PieData

	for _, c := range in.Bands.Count(in.Municipalities) {
		if c.Count == 0 {
			continue
		}

		data = append(data, opts.PieData{Name: c.Label, Value: c.Count})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Distribuição por Faixa de Votos",
			ChartID:   pieChartID,
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Distribuição de Municípios por Faixa de Votos",
			Subtitle: in.Candidate,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
	)
	pie.AddSeries("Municípios", data)

	if err := pie.Render(w); err != nil {
		return fmt.Errorf("rendering pie chart: %w", err)
	}

	return nil
}
