// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocoding maps municipality names to coordinates.
package geocoding

import (
	"context"
	"log"

	"github.com/mapavotos/mapavotos/spatial"
)

// Resolver maps a municipality to its coordinates. A false result is a miss:
// callers skip the municipality and keep going.
type Resolver interface {
	Resolve(ctx context.Context, municipality, region string) (spatial.Point, bool)
}

// Confidence levels reported by providers.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// GeocodingResult represents a geocoding result from any provider.
type GeocodingResult struct {
	Latitude    float64
	Longitude   float64
	Confidence  string // ConfidenceHigh, ConfidenceMedium or ConfidenceLow
	Provider    string
	DisplayName string
}

// Point returns the result coordinates.
func (r *GeocodingResult) Point() spatial.Point {
	return spatial.Point{Lat: r.Latitude, Lng: r.Longitude}
}

// Locator is a Resolver that can also tell where an answer came from.
type Locator interface {
	Resolver
	Locate(ctx context.Context, municipality, region string) (*GeocodingResult, bool)
}

// Locate resolves through r and describes the hit. Resolvers that are not
// Locators yield a result with only the coordinates set.
func Locate(ctx context.Context, r Resolver, municipality, region string) (*GeocodingResult, bool) {
	if l, ok := r.(Locator); ok {
		return l.Locate(ctx, municipality, region)
	}

	p, ok := r.Resolve(ctx, municipality, region)
	if !ok {
		return nil, false
	}

	return &GeocodingResult{Latitude: p.Lat, Longitude: p.Lng}, true
}

// Geocoder interface for different geocoding providers.
type Geocoder interface {
	Geocode(ctx context.Context, municipality string, region string) (*GeocodingResult, error)
}

// Logf receives diagnostics about misses.
type Logf func(format string, args ...any)

func orDefault(logf Logf) Logf {
	if logf == nil {
		return log.Printf
	}

	return logf
}

// Chain tries each resolver in order and keeps the first hit, e.g. the
// static table first and a network provider only for its misses.
type Chain []Resolver

// Resolve implements Resolver.
func (c Chain) Resolve(ctx context.Context, municipality, region string) (spatial.Point, bool) {
	result, ok := c.Locate(ctx, municipality, region)
	if !ok {
		return spatial.Point{}, false
	}

	return result.Point(), true
}

// Locate implements Locator.
func (c Chain) Locate(ctx context.Context, municipality, region string) (*GeocodingResult, bool) {
	for _, r := range c {
		if result, ok := Locate(ctx, r, municipality, region); ok {
			return result, true
		}
	}

	return nil, false
}

// query builds the free form search text sent to providers.
func query(municipality, region string) string {
	if region == "" {
		return municipality + ", Brasil"
	}

	return municipality + ", " + region + ", Brasil"
}
