// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mapavotos/mapavotos/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extract = `"DT_GERACAO";"NM_UE";"SG_UF";"CD_MUNICIPIO";"NM_MUNICIPIO";"NM_VOTAVEL";"QT_VOTOS"
"01/10/2018";"SANTA CATARINA";"SC";"80810";"LAGES";"MAURO MARIANI";"120"
"01/10/2018";"SANTA CATARINA";"SC";"80810";"Lages ";"MAURO MARIANI";"30"
"01/10/2018";"SANTA CATARINA";"SC";"80470";"CRICIÚMA";"MAURO MARIANI";"abc"
"01/10/2018";"SANTA CATARINA";"SC";"81795";"JOINVILLE";"MAURO MARIANI";"75"
`

func writeExtract(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dados_tse.csv")
	require.NoError(t, os.WriteFile(path, []byte(extract), 0o600))

	return path
}

func defaultRunOptions(input, outDir string) *runOptions {
	return &runOptions{
		Input:   input,
		OutDir:  outDir,
		Charset: "utf-8",
		Bands:   "50,100,200",
		H3Res:   -1,
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()

	return out.String(), err
}

func TestRun(t *testing.T) {
	outDir := t.TempDir()

	opts := defaultRunOptions(writeExtract(t), outDir)
	opts.Candidate = "MAURO MARIANI"

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &stdout))

	for _, name := range []string{report.HeatMapFile, report.BarChartFile, report.PieChartFile, report.TextFile} {
		_, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, name)
	}

	got := stdout.String()
	assert.Contains(t, got, "Candidato: MAURO MARIANI\n")
	assert.Contains(t, got, "- Total de votos: 225\n")
	assert.Less(t, strings.Index(got, " 1. LAGES"), strings.Index(got, " 2. JOINVILLE"))
	assert.Contains(t, got, " 3. CRICIÚMA")
	assert.Contains(t, got, "- 0: 1 municípios\n")
}

func TestRun_InputNotFound(t *testing.T) {
	opts := defaultRunOptions(filepath.Join(t.TempDir(), "dados_tse.csv"), t.TempDir())

	err := run(context.Background(), opts, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "use --input")
}

func TestRun_InvalidBands(t *testing.T) {
	opts := defaultRunOptions(writeExtract(t), t.TempDir())
	opts.Bands = "100,50"

	err := run(context.Background(), opts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "--bands")
}

func TestRootCommand(t *testing.T) {
	outDir := t.TempDir()

	out, err := execute(t, "--input", writeExtract(t), "--out-dir", outDir, "--top-report", "1")
	require.NoError(t, err)
	assert.Contains(t, out, " 1. LAGES")
	assert.NotContains(t, out, " 2. JOINVILLE")
	assert.Contains(t, out, "... e mais 2 municípios")

	_, err = execute(t, "--input", filepath.Join(t.TempDir(), "missing.csv"), "--out-dir", outDir)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCoordsCommand(t *testing.T) {
	out, err := execute(t, "coords")
	require.NoError(t, err)

	assert.Contains(t, out, "Coordenadas conhecidas (15):")
	assert.Contains(t, out, "│ FLORIANÓPOLIS             │    │   -27.5954 │   -48.5480 │")
	assert.Less(t, strings.Index(out, "ARARANGUÁ"), strings.Index(out, "VIDEIRA"))
}

func TestGeocodeCommand(t *testing.T) {
	out, err := execute(t, "geocode", "lages", "sc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "LAGES/SC\t-27.8161\t-50.3259\t8"), out)

	fields := strings.Split(strings.TrimSuffix(out, "\n"), "\t")
	require.Len(t, fields, 7)
	assert.Equal(t, []string{"static", "high", "LAGES"}, fields[4:])

	_, err = execute(t, "geocode", "Joinville", "SC")
	assert.ErrorContains(t, err, "JOINVILLE/SC")

	_, err = execute(t, "geocode", "Lages")
	assert.Error(t, err)
}
