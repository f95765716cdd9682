// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/mapavotos/mapavotos/geocoding"
	"github.com/mapavotos/mapavotos/report"
	"github.com/mapavotos/mapavotos/tse"
	"github.com/mapavotos/mapavotos/utils/textutils"
)

type runOptions struct {
	Input     string
	OutDir    string
	Charset   string
	Bands     string
	TopReport int
	TopChart  int
	H3Res     int
	Election  string
	Candidate string
}

// geocodingFlags are shared by every command that resolves coordinates.
type geocodingFlags struct {
	resolvers  string
	coordsFile string
	delay      time.Duration
	traceHTTP  bool
}

var geoOpts = &geocodingFlags{resolvers: geocoding.ResolverStatic, delay: geocoding.DefaultDelay}

func (f *geocodingFlags) resolver(ctx context.Context) (geocoding.Resolver, error) {
	names, err := geocoding.ParseResolvers(f.resolvers)
	if err != nil {
		return nil, err
	}

	cfg, err := geocoding.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	var trace io.Writer
	if f.traceHTTP {
		trace = os.Stderr
	}

	return geocoding.New(ctx, cfg, geocoding.Options{
		Resolvers:  names,
		CoordsFile: f.coordsFile,
		Delay:      f.delay,
		Timeout:    geocoding.DefaultTimeout,
		UserAgent:  userAgent(),
		Trace:      trace,
		Logf:       log.Printf,
	})
}

// run loads, aggregates, bands and renders an extract.
func run(ctx context.Context, opts *runOptions, stdout io.Writer) error {
	log.Printf("Processando dados do TSE: %s", opts.Input)

	ballots, err := tse.Load(opts.Input, tse.LoadOptions{Charset: opts.Charset})
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("arquivo %q não encontrado; certifique-se de que o arquivo CSV está no diretório atual ou use --input: %w",
			opts.Input, err)
	}

	if err != nil {
		return fmt.Errorf("processando %s: %w", opts.Input, err)
	}

	ms, summary := tse.Aggregate(ballots)
	log.Printf("Total de municípios: %s", textutils.FormatInt(int64(summary.Municipalities)))
	log.Printf("Total de votos processados: %s", textutils.FormatNumber(summary.TotalVotes))

	if summary.NonNumeric > 0 || summary.Dropped > 0 {
		log.Printf("Linhas ignoradas: %d com votos não numéricos, %d sem município ou UF",
			summary.NonNumeric, summary.Dropped)
	}

	if summary.Fractional > 0 {
		log.Printf("Linhas com votos fracionários somadas: %d", summary.Fractional)
	}

	bounds, err := tse.ParseBounds(opts.Bands)
	if err != nil {
		return fmt.Errorf("--bands: %w", err)
	}

	bands, err := tse.NewBands(bounds)
	if err != nil {
		return fmt.Errorf("--bands: %w", err)
	}

	bands.Assign(ms)

	resolver, err := geoOpts.resolver(ctx)
	if err != nil {
		return fmt.Errorf("configurando coordenadas: %w", err)
	}

	in := &report.Input{
		Election:       opts.Election,
		Candidate:      opts.Candidate,
		Municipalities: ms,
		Summary:        summary,
		Bands:          bands,
	}

	res, err := report.Emit(ctx, in, resolver, report.Options{
		OutDir:    opts.OutDir,
		TopReport: opts.TopReport,
		TopChart:  opts.TopChart,
		H3Res:     opts.H3Res,
		Stdout:    stdout,
		Logf:      log.Printf,
	})
	if err != nil {
		return err
	}

	logLookups(resolver)

	log.Printf("Processamento concluído. %d municípios no mapa, %d sem coordenadas.",
		len(res.HeatMap.Markers), len(res.HeatMap.Skipped))

	return nil
}

func logLookups(r geocoding.Resolver) {
	resolvers := []geocoding.Resolver{r}
	if chain, ok := r.(geocoding.Chain); ok {
		resolvers = chain
	}

	for _, r := range resolvers {
		if d, ok := r.(*geocoding.Dynamic); ok {
			log.Printf("Consultas ao geocodificador: %d (%d sem resultado)", d.Lookups, d.Misses)
		}
	}
}
