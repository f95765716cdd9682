// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mapavotos/mapavotos/geocoding"
)

// Options configures Emit.
type Options struct {
	OutDir    string // created when missing
	TopReport int    // ranking length in the text report, 0 for all
	TopChart  int    // bars in the bar chart, 0 for all
	H3Res     int    // heat layer binning, negative disables it
	Stdout    io.Writer
	Logf      geocoding.Logf
}

// Result describes what Emit produced.
type Result struct {
	Files   []string // paths, in write order
	HeatMap *HeatMap
	Stats   Stats
}

// Emit writes the four outputs into opts.OutDir, replacing previous ones:
// heat map, bar chart, pie chart and text report, in that order. The text
// report is also copied to opts.Stdout.
func Emit(ctx context.Context, in *Input, resolver geocoding.Resolver, opts Options) (*Result, error) {
	dir := opts.OutDir
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	res := &Result{}

	heat, err := BuildHeatMap(ctx, in, resolver, HeatMapOptions{H3Res: opts.H3Res, Logf: logf})
	if err != nil {
		return nil, err
	}

	res.HeatMap = heat

	stats, err := ComputeStats(ctx, in.Municipalities)
	if err != nil {
		return nil, err
	}

	res.Stats = stats

	var text bytes.Buffer
	if err := WriteText(&text, in, stats, opts.TopReport); err != nil {
		return nil, err
	}

	outputs := []struct {
		name  string
		write func(io.Writer) error
	}{
		{HeatMapFile, heat.Render},
		{BarChartFile, func(w io.Writer) error { return WriteBarChart(w, in, opts.TopChart) }},
		{PieChartFile, func(w io.Writer) error { return WriteBandPieChart(w, in) }},
		{TextFile, func(w io.Writer) error {
			_, err := w.Write(text.Bytes())

			return err
		}},
	}

	for _, o := range outputs {
		path := filepath.Join(dir, o.name)
		if err := writeFile(path, o.write); err != nil {
			return nil, err
		}

		logf("Arquivo salvo: %s", path)
		res.Files = append(res.Files, path)
	}

	if opts.Stdout != nil {
		if _, err := opts.Stdout.Write(text.Bytes()); err != nil {
			return nil, fmt.Errorf("printing report: %w", err)
		}
	}

	return res, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()

		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := w.Flush(); err != nil {
		f.Close()

		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	return nil
}
