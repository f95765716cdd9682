// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/mapavotos/mapavotos/spatial"
	"github.com/mapavotos/mapavotos/tse"
	"github.com/mapavotos/mapavotos/utils/textutils"
	"gopkg.in/yaml.v3"
)

// StaticEntry is one row of the coordinates table.
type StaticEntry struct {
	Name   string  `yaml:"name"`
	Region string  `yaml:"region,omitempty"` // empty matches any UF
	Lat    float64 `yaml:"lat"`
	Lng    float64 `yaml:"lng"`
}

// Point returns the entry coordinates.
func (e StaticEntry) Point() spatial.Point {
	return spatial.Point{Lat: e.Lat, Lng: e.Lng}
}

func (e StaticEntry) result() *GeocodingResult {
	display := e.Name
	if e.Region != "" {
		display += "/" + e.Region
	}

	return &GeocodingResult{
		Latitude:    e.Lat,
		Longitude:   e.Lng,
		Confidence:  ConfidenceHigh,
		Provider:    StaticProvider,
		DisplayName: display,
	}
}

// Approximate centers of Santa Catarina municipalities.
var defaultEntries = []StaticEntry{
	{Name: "CRICIÚMA", Lat: -28.6775, Lng: -49.3697},
	{Name: "SÃO JOSÉ", Lat: -27.6136, Lng: -48.6366},
	{Name: "FLORIANÓPOLIS", Lat: -27.5954, Lng: -48.5480},
	{Name: "LAGES", Lat: -27.8161, Lng: -50.3259},
	{Name: "SÃO JOAQUIM", Lat: -28.2939, Lng: -49.9317},
	{Name: "VIDEIRA", Lat: -27.0089, Lng: -51.1517},
	{Name: "SÃO DOMINGOS", Lat: -26.5581, Lng: -52.5317},
	{Name: "INDAIAL", Lat: -26.8989, Lng: -49.2317},
	{Name: "SIDERÓPOLIS", Lat: -28.5981, Lng: -49.4267},
	{Name: "BALNEÁRIO CAMBORIÚ", Lat: -26.9906, Lng: -48.6342},
	{Name: "FRAIBURGO", Lat: -27.0256, Lng: -50.8075},
	{Name: "PORTO BELO", Lat: -27.1567, Lng: -48.5450},
	{Name: "OURO VERDE", Lat: -26.6917, Lng: -52.3100},
	{Name: "SCHROEDER", Lat: -26.4117, Lng: -49.0733},
	{Name: "ARARANGUÁ", Lat: -28.9356, Lng: -49.4958},
}

// Static resolves municipalities from an in-memory table keyed by the
// uppercased name and UF. Entries without a UF answer for any UF that has
// no entry of its own. It never touches the network.
type Static struct {
	entries map[staticKey]StaticEntry
	regions map[string][]string // name -> UFs with a pinned entry, for diagnostics
	folded  map[string]string   // accent folded name -> key, for diagnostics
	logf    Logf
}

type staticKey struct {
	name   string
	region string
}

// NewStatic builds the table from the compiled-in entries, overridden or
// extended by extra. An extra entry replaces a previous one only when both
// name and UF match.
func NewStatic(logf Logf, extra ...StaticEntry) *Static {
	s := &Static{
		entries: make(map[staticKey]StaticEntry, len(defaultEntries)+len(extra)),
		regions: make(map[string][]string),
		folded:  make(map[string]string, len(defaultEntries)+len(extra)),
		logf:    orDefault(logf),
	}

	for _, e := range slices.Concat(defaultEntries, extra) {
		e.Name = tse.NormalizeName(e.Name)
		e.Region = tse.NormalizeRegion(e.Region)

		key := staticKey{name: e.Name, region: e.Region}
		if _, dup := s.entries[key]; !dup && e.Region != "" {
			s.regions[e.Name] = append(s.regions[e.Name], e.Region)
		}

		s.entries[key] = e
		s.folded[textutils.LowerASCIIFolding(e.Name)] = e.Name
	}

	return s
}

// StaticProvider names the static table in a GeocodingResult.
const StaticProvider = "static"

// Resolve implements Resolver.
func (s *Static) Resolve(ctx context.Context, municipality, region string) (spatial.Point, bool) {
	result, ok := s.Locate(ctx, municipality, region)
	if !ok {
		return spatial.Point{}, false
	}

	return result.Point(), true
}

// Locate implements Locator. An entry pinned to the UF wins over the
// region-less one.
func (s *Static) Locate(_ context.Context, municipality, region string) (*GeocodingResult, bool) {
	name := tse.NormalizeName(municipality)
	region = tse.NormalizeRegion(region)

	if e, ok := s.entries[staticKey{name: name, region: region}]; ok {
		return e.result(), true
	}

	if e, ok := s.entries[staticKey{name: name}]; ok {
		return e.result(), true
	}

	if known := s.regions[name]; len(known) > 0 {
		s.logf("Coordenadas não encontradas para: %s (%s); a tabela só conhece %s/%s",
			name, region, name, strings.Join(known, ", "+name+"/"))
	} else if guess, found := s.folded[textutils.LowerASCIIFolding(name)]; found {
		s.logf("Coordenadas não encontradas para: %s (você quis dizer %s?)", name, guess)
	} else {
		s.logf("Coordenadas não encontradas para: %s", name)
	}

	return nil, false
}

// Len returns the number of entries in the table.
func (s *Static) Len() int {
	return len(s.entries)
}

// Each calls fn for every entry, sorted by name and then UF.
func (s *Static) Each(fn func(StaticEntry) error) error {
	keys := make([]staticKey, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}

	slices.SortFunc(keys, func(a, b staticKey) int {
		if c := strings.Compare(textutils.LowerASCIIFolding(a.name), textutils.LowerASCIIFolding(b.name)); c != 0 {
			return c
		}

		return strings.Compare(a.region, b.region)
	})

	for _, key := range keys {
		if err := fn(s.entries[key]); err != nil {
			return err
		}
	}

	return nil
}

type staticFile struct {
	Municipalities []StaticEntry `yaml:"municipalities"`
}

// LoadStaticFile reads extra coordinates from a YAML file such as:
//
//	municipalities:
//	  - name: JOINVILLE
//	    region: SC
//	    lat: -26.3045
//	    lng: -48.8487
func LoadStaticFile(path string) ([]StaticEntry, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("reading coordinates file: %w", err)
	}

	var f staticFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing coordinates file: %w", err)
	}

	for i, e := range f.Municipalities {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("coordinates file: entry %d has no name", i+1)
		}

		if err := e.Point().Validate(); err != nil {
			return nil, fmt.Errorf("coordinates file: entry %q: %w", e.Name, err)
		}
	}

	return f.Municipalities, nil
}
