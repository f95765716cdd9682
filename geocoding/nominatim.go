// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultNominatimURL is the public OpenStreetMap instance.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// Nominatim uses the OpenStreetMap search API. The public instance requires
// an identifying User-Agent, which the client is expected to set.
type Nominatim struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatim creates a new Nominatim geocoder.
func NewNominatim(baseURL string, httpClient *http.Client) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}

	return &Nominatim{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type nominatimPlace struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	AddressType string  `json:"addresstype"`
	Importance  float64 `json:"importance"`
}

func (n *Nominatim) Geocode(ctx context.Context, municipality string, region string) (*GeocodingResult, error) {
	params := url.Values{}
	params.Set("q", query(municipality, region))
	params.Set("format", "jsonv2")
	params.Set("limit", "1")
	params.Set("countrycodes", "br")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building nominatim request: %w", err)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ClassifyHTTPError(resp.StatusCode, resp.Status)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(places) == 0 {
		return nil, &GeocodingError{
			Type:    ErrorTypeNotFound,
			Message: "no results found for " + municipality,
		}
	}

	place := places[0]

	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude %q: %w", place.Lat, err)
	}

	lng, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude %q: %w", place.Lon, err)
	}

	// a municipality answered with a city or town polygon is what we want;
	// anything else (a street, a shop) is a loose match
	confidence := ConfidenceLow

	switch place.AddressType {
	case "municipality", "city", "town":
		confidence = ConfidenceHigh
	case "village", "suburb", "county":
		confidence = ConfidenceMedium
	}

	return &GeocodingResult{
		Latitude:    lat,
		Longitude:   lng,
		Confidence:  confidence,
		Provider:    "nominatim",
		DisplayName: place.DisplayName,
	}, nil
}
