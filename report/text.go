// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/mapavotos/mapavotos/utils/textutils"
)

const nameWidth = 25

func formatFloat(f sql.NullFloat64) string {
	if !f.Valid {
		return "-"
	}

	return fmt.Sprintf("%.1f", f.Float64)
}

// WriteText writes the statistical report. topN limits the ranking, 0 lists
// every municipality.
func WriteText(w io.Writer, in *Input, stats Stats, topN int) error {
	var b strings.Builder

	b.WriteString("RELATÓRIO DE ANÁLISE DOS DADOS DE VOTAÇÃO - TSE\n")
	b.WriteString("================================================\n")

	if in.Election != "" {
		fmt.Fprintf(&b, "Eleição: %s\n", in.Election)
	}

	if in.Candidate != "" {
		fmt.Fprintf(&b, "Candidato: %s\n", in.Candidate)
	}

	ms := in.Municipalities

	b.WriteString("\nEstatísticas Gerais:\n")
	fmt.Fprintf(&b, "- Total de municípios: %s\n", textutils.FormatInt(int64(stats.Count)))
	fmt.Fprintf(&b, "- Total de votos: %s\n", textutils.FormatNumber(stats.Total))
	fmt.Fprintf(&b, "- Média de votos por município: %s\n", formatFloat(stats.Mean))
	fmt.Fprintf(&b, "- Mediana de votos por município: %s\n", formatFloat(stats.Median))
	fmt.Fprintf(&b, "- Desvio padrão: %s\n", formatFloat(stats.StdDev))

	if len(ms) > 0 {
		first, last := ms[0], ms[len(ms)-1]
		fmt.Fprintf(&b, "- Município com mais votos: %s (%s votos)\n", first.Name, textutils.FormatNumber(first.Votes))
		fmt.Fprintf(&b, "- Município com menos votos: %s (%s votos)\n", last.Name, textutils.FormatNumber(last.Votes))
	}

	s := in.Summary
	fmt.Fprintf(&b, "- Linhas lidas: %s (%s não numéricas, %s descartadas)\n",
		textutils.FormatInt(int64(s.Rows)), textutils.FormatInt(int64(s.NonNumeric)), textutils.FormatInt(int64(s.Dropped)))

	b.WriteString("\nRanking de Municípios:\n")

	ranked := top(ms, topN)
	for i, m := range ranked {
		fmt.Fprintf(&b, "%2d. %s - %s votos\n",
			i+1, textutils.PadRight(m.Name, nameWidth), textutils.PadLeft(textutils.FormatNumber(m.Votes), 6))
	}

	if rest := len(ms) - len(ranked); rest > 0 {
		fmt.Fprintf(&b, "    ... e mais %s municípios\n", textutils.FormatInt(int64(rest)))
	}

	b.WriteString("\nDistribuição por Faixas de Votos:\n")

	for _, c := range in.Bands.Count(ms) {
		fmt.Fprintf(&b, "- %s: %d municípios\n", c.Label, c.Count)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}
