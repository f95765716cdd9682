// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/mapavotos/mapavotos/geocoding"
	"github.com/mapavotos/mapavotos/spatial"
	"github.com/mapavotos/mapavotos/utils/textutils"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

const (
	// MarkerCellRes is the H3 resolution shown in marker popups.
	MarkerCellRes = 7

	minMarkerRadius = 8
	maxMarkerRadius = 25
	votesPerPixel   = 50

	minZoom = 4
	maxZoom = 10
)

// DefaultCenter is used when no municipality could be placed.
var (
	DefaultCenter = spatial.Point{Lat: -27.2423, Lng: -50.2189}
	DefaultZoom   = 7
)

// Marker is a municipality drawn on the map.
type Marker struct {
	Name   string        `json:"name"`
	Region string        `json:"region"`
	Votes  float64       `json:"votes"`
	Point  spatial.Point `json:"point"`
	Cell   string        `json:"cell"`
	Radius float64       `json:"radius"`
	Popup  string        `json:"popup"`
}

// HeatMap is the resolved content of the map page.
type HeatMap struct {
	Title     string
	Candidate string
	Center    spatial.Point
	Zoom      int
	Markers   []Marker
	Heat      []spatial.WeightedPoint
	MaxWeight float64
	Skipped   []string // municipalities without coordinates, as NAME/UF
}

// HeatMapOptions tunes BuildHeatMap.
type HeatMapOptions struct {
	// H3Res bins the heat layer into H3 cells of that resolution. Negative
	// values keep one heat point per municipality.
	H3Res int
	Logf  geocoding.Logf
}

func markerRadius(votes float64) float64 {
	return max(minMarkerRadius, min(maxMarkerRadius, votes/votesPerPixel))
}

func popup(name string, votes float64, candidate, cell string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s</b><br>Votos: %s<br>", template.HTMLEscapeString(name), textutils.FormatNumber(votes))

	if candidate != "" {
		fmt.Fprintf(&b, "Candidato: %s<br>", template.HTMLEscapeString(candidate))
	}

	fmt.Fprintf(&b, "H3: %s", cell)

	return b.String()
}

// BuildHeatMap resolves the coordinates of every municipality, in table
// order, and lays out the map. Municipalities the resolver misses are
// skipped and listed in the result.
func BuildHeatMap(ctx context.Context, in *Input, resolver geocoding.Resolver, opts HeatMapOptions) (*HeatMap, error) {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	ms := in.Municipalities

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(ms),
			progressbar.OptionSetDescription("Resolvendo coordenadas"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	h := &HeatMap{
		Title:     "Mapa de Calor - Votos",
		Candidate: in.Candidate,
	}

	if in.Election != "" {
		h.Title += " - " + in.Election
	}

	points := make([]spatial.Point, 0, len(ms))

	for _, m := range ms {
		p, ok := resolver.Resolve(ctx, m.Name, m.Region)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				return nil, fmt.Errorf("updating progress bar for %s: %w", m.Name, err)
			}
		}

		if !ok {
			h.Skipped = append(h.Skipped, m.Name+"/"+m.Region)

			continue
		}

		cell, err := p.Cell(MarkerCellRes)
		if err != nil {
			return nil, fmt.Errorf("placing %s: %w", m.Name, err)
		}

		h.Markers = append(h.Markers, Marker{
			Name:   m.Name,
			Region: m.Region,
			Votes:  m.Votes,
			Point:  p,
			Cell:   cell.String(),
			Radius: markerRadius(m.Votes),
			Popup:  popup(m.Name, m.Votes, in.Candidate, cell.String()),
		})
		h.Heat = append(h.Heat, spatial.WeightedPoint{Point: p, Weight: m.Votes})
		points = append(points, p)
	}

	if opts.H3Res >= 0 && len(h.Heat) > 0 {
		binned, err := spatial.BinH3(h.Heat, opts.H3Res)
		if err != nil {
			return nil, fmt.Errorf("binning heat layer: %w", err)
		}

		h.Heat = binned
	}

	h.MaxWeight = 1
	for _, p := range h.Heat {
		h.MaxWeight = max(h.MaxWeight, p.Weight)
	}

	if center, ok := spatial.Centroid(points); ok {
		h.Center = center
		h.Zoom = spatial.FitZoom(center, points, minZoom, maxZoom)
	} else {
		h.Center = DefaultCenter
		h.Zoom = DefaultZoom
	}

	if len(h.Skipped) > 0 {
		logf("Municípios sem coordenadas (%d): %s", len(h.Skipped), strings.Join(h.Skipped, ", "))
	}

	return h, nil
}

// Render writes the map as a standalone Leaflet page.
func (h *HeatMap) Render(w io.Writer) error {
	if err := heatMapTemplate.Execute(w, h); err != nil {
		return fmt.Errorf("rendering heat map: %w", err)
	}

	return nil
}

var heatMapTemplate = template.Must(template.New("heatmap").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://unpkg.com/leaflet.heat@0.2.0/dist/leaflet-heat.js"></script>
<style>
html, body { height: 100%; margin: 0; font-family: sans-serif; }
header { text-align: center; }
header h3 { font-size: 20px; margin: 8px 0 0; }
#map { height: calc(100% - 90px); }
#skipped { font-size: 12px; color: #666; margin: 4px 8px; }
</style>
</head>
<body>
<header>
<h3 id="title">{{.Title}}</h3>
{{if .Candidate}}<p id="candidate">Candidato: {{.Candidate}}</p>{{end}}
</header>
<div id="map"></div>
{{if .Skipped}}<p id="skipped">Sem coordenadas: {{range $i, $s := .Skipped}}{{if $i}}, {{end}}<span class="skipped">{{$s}}</span>{{end}}</p>{{end}}
<script>
var map = L.map('map').setView([{{.Center.Lat}}, {{.Center.Lng}}], {{.Zoom}});
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
  maxZoom: 18,
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

var markers = L.layerGroup();
var markerData = {{.Markers}};
(markerData || []).forEach(function (m) {
  L.circleMarker([m.point.lat, m.point.lng], {
    radius: m.radius,
    color: 'red',
    fill: true,
    fillColor: 'red',
    fillOpacity: 0.7
  }).bindPopup(m.popup).addTo(markers);
});
markers.addTo(map);

var heatData = {{.Heat}};
var heat = L.heatLayer((heatData || []).map(function (p) { return [p.lat, p.lng, p.weight]; }), {
  minOpacity: 0.3,
  maxZoom: 18,
  max: {{.MaxWeight}},
  radius: 30,
  blur: 20,
  gradient: {0.4: 'blue', 0.6: 'cyan', 0.7: 'lime', 0.8: 'yellow', 1.0: 'red'}
}).addTo(map);

L.control.layers(null, {'Mapa de Calor': heat, 'Municípios': markers}).addTo(map);
</script>
</body>
</html>
`))
