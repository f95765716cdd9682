// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mapavotos/mapavotos/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects diagnostics instead of printing them.
type recorder struct {
	lines []string
}

func (r *recorder) Logf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func TestStatic_Known(t *testing.T) {
	s := NewStatic(nil)

	p, ok := s.Resolve(context.Background(), "FLORIANÓPOLIS", "SC")
	require.True(t, ok)
	assert.Equal(t, spatial.Point{Lat: -27.5954, Lng: -48.5480}, p)

	// the key is the uppercased name
	p, ok = s.Resolve(context.Background(), "lages ", "SC")
	require.True(t, ok)
	assert.Equal(t, spatial.Point{Lat: -27.8161, Lng: -50.3259}, p)
}

func TestStatic_Unknown(t *testing.T) {
	var rec recorder

	s := NewStatic(rec.Logf)

	_, ok := s.Resolve(context.Background(), "JOINVILLE", "SC")
	assert.False(t, ok)
	require.Len(t, rec.lines, 1)
	assert.Equal(t, "Coordenadas não encontradas para: JOINVILLE", rec.lines[0])
}

func TestStatic_SuggestsAccentedKey(t *testing.T) {
	var rec recorder

	s := NewStatic(rec.Logf)

	_, ok := s.Resolve(context.Background(), "CRICIUMA", "SC")
	assert.False(t, ok)
	require.Len(t, rec.lines, 1)
	assert.Contains(t, rec.lines[0], "você quis dizer CRICIÚMA?")
}

func TestStatic_ExtraEntries(t *testing.T) {
	var rec recorder

	s := NewStatic(rec.Logf,
		StaticEntry{Name: "Joinville", Region: "sc", Lat: -26.3045, Lng: -48.8487},
		StaticEntry{Name: "LAGES", Lat: -27.8, Lng: -50.3},
	)

	assert.Equal(t, 16, s.Len())

	p, ok := s.Resolve(context.Background(), "JOINVILLE", "SC")
	require.True(t, ok)
	assert.Equal(t, spatial.Point{Lat: -26.3045, Lng: -48.8487}, p)

	p, ok = s.Resolve(context.Background(), "LAGES", "SC")
	require.True(t, ok)
	assert.Equal(t, spatial.Point{Lat: -27.8, Lng: -50.3}, p)

	_, ok = s.Resolve(context.Background(), "JOINVILLE", "PR")
	assert.False(t, ok)
	require.Len(t, rec.lines, 1)
	assert.Equal(t, "Coordenadas não encontradas para: JOINVILLE (PR); a tabela só conhece JOINVILLE/SC", rec.lines[0])
}

func TestStatic_SameNameInAnotherRegion(t *testing.T) {
	var rec recorder

	s := NewStatic(rec.Logf,
		StaticEntry{Name: "São Domingos", Region: "GO", Lat: -13.3978, Lng: -46.3183},
		StaticEntry{Name: "SÃO DOMINGOS", Region: "BA", Lat: -11.4647, Lng: -39.5264},
	)

	assert.Equal(t, 17, s.Len())

	p, ok := s.Resolve(context.Background(), "SÃO DOMINGOS", "SC")
	require.True(t, ok)
	assert.Equal(t, spatial.Point{Lat: -26.5581, Lng: -52.5317}, p)

	p, ok = s.Resolve(context.Background(), "SÃO DOMINGOS", "go")
	require.True(t, ok)
	assert.Equal(t, spatial.Point{Lat: -13.3978, Lng: -46.3183}, p)

	p, ok = s.Resolve(context.Background(), "SÃO DOMINGOS", "BA")
	require.True(t, ok)
	assert.Equal(t, spatial.Point{Lat: -11.4647, Lng: -39.5264}, p)

	assert.Empty(t, rec.lines)

	var regions []string

	err := s.Each(func(e StaticEntry) error {
		if e.Name == "SÃO DOMINGOS" {
			regions = append(regions, e.Region)
		}

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "BA", "GO"}, regions)
}

func TestStatic_PinnedEntryOnly(t *testing.T) {
	var rec recorder

	s := NewStatic(rec.Logf,
		StaticEntry{Name: "BOM JESUS", Region: "RS", Lat: -28.6697, Lng: -50.4295},
		StaticEntry{Name: "BOM JESUS", Region: "PI", Lat: -9.0744, Lng: -44.3586},
	)

	_, ok := s.Resolve(context.Background(), "BOM JESUS", "SC")
	assert.False(t, ok)
	require.Len(t, rec.lines, 1)
	assert.Equal(t,
		"Coordenadas não encontradas para: BOM JESUS (SC); a tabela só conhece BOM JESUS/RS, BOM JESUS/PI",
		rec.lines[0])
}

func TestStatic_Each(t *testing.T) {
	s := NewStatic(nil)

	var names []string

	err := s.Each(func(e StaticEntry) error {
		names = append(names, e.Name)

		return nil
	})
	require.NoError(t, err)
	assert.Len(t, names, 15)
	assert.Equal(t, "ARARANGUÁ", names[0])
	assert.Equal(t, "VIDEIRA", names[len(names)-1])
}

func TestLoadStaticFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coords.yaml")

	content := `municipalities:
  - name: JOINVILLE
    region: SC
    lat: -26.3045
    lng: -48.8487
  - name: blumenau
    lat: -26.9194
    lng: -49.0661
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	entries, err := LoadStaticFile(path)
	require.NoError(t, err)
	assert.Equal(t, []StaticEntry{
		{Name: "JOINVILLE", Region: "SC", Lat: -26.3045, Lng: -48.8487},
		{Name: "blumenau", Lat: -26.9194, Lng: -49.0661},
	}, entries)
}

func TestLoadStaticFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "municipalities: [\n"},
		{"no name", "municipalities:\n  - lat: -26\n    lng: -48\n"},
		{"bad latitude", "municipalities:\n  - name: X\n    lat: -126\n    lng: -48\n"},
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, fmt.Sprintf("coords-%d.yaml", i))
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			_, err := LoadStaticFile(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadStaticFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	var rec recorder

	fallback := NewStatic(rec.Logf, StaticEntry{Name: "JOINVILLE", Lat: -26.3045, Lng: -48.8487})
	chain := Chain{NewStatic(rec.Logf), fallback}

	p, ok := chain.Resolve(context.Background(), "LAGES", "SC")
	require.True(t, ok)
	assert.Equal(t, spatial.Point{Lat: -27.8161, Lng: -50.3259}, p)
	assert.Empty(t, rec.lines)

	p, ok = chain.Resolve(context.Background(), "JOINVILLE", "SC")
	require.True(t, ok)
	assert.Equal(t, -26.3045, p.Lat)

	_, ok = chain.Resolve(context.Background(), "NOWHERE", "SC")
	assert.False(t, ok)
}

// pointResolver is a Resolver that knows nothing about provenance.
type pointResolver spatial.Point

func (r pointResolver) Resolve(context.Context, string, string) (spatial.Point, bool) {
	return spatial.Point(r), true
}

func TestLocate(t *testing.T) {
	s := NewStatic(nil, StaticEntry{Name: "SÃO DOMINGOS", Region: "GO", Lat: -13.3978, Lng: -46.3183})

	got, ok := Locate(context.Background(), s, "são domingos", "GO")
	require.True(t, ok)
	assert.Equal(t, &GeocodingResult{
		Latitude:    -13.3978,
		Longitude:   -46.3183,
		Confidence:  ConfidenceHigh,
		Provider:    StaticProvider,
		DisplayName: "SÃO DOMINGOS/GO",
	}, got)

	// the chain reports the resolver that answered
	chain := Chain{NewStatic((&recorder{}).Logf), pointResolver{Lat: -26.3045, Lng: -48.8487}}

	got, ok = Locate(context.Background(), chain, "LAGES", "SC")
	require.True(t, ok)
	assert.Equal(t, StaticProvider, got.Provider)
	assert.Equal(t, "LAGES", got.DisplayName)

	got, ok = Locate(context.Background(), chain, "JOINVILLE", "SC")
	require.True(t, ok)
	assert.Equal(t, &GeocodingResult{Latitude: -26.3045, Longitude: -48.8487}, got)
}
