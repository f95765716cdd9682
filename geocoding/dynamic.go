// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"time"

	"github.com/mapavotos/mapavotos/spatial"
	"golang.org/x/time/rate"
)

const (
	// MinDelay is the shortest spacing allowed between two lookups.
	MinDelay = 100 * time.Millisecond
	// DefaultDelay honours the public Nominatim usage policy of one request
	// per second.
	DefaultDelay = time.Second
	// DefaultTimeout bounds a single lookup.
	DefaultTimeout = 10 * time.Second
)

// DynamicOptions configures NewDynamic.
type DynamicOptions struct {
	Delay   time.Duration   // spacing between lookups, clamped to MinDelay
	Timeout time.Duration   // per lookup, DefaultTimeout when zero
	Bounds  *spatial.Bounds // accepted area, BrazilBounds when nil
	Logf    Logf
}

// Dynamic resolves municipalities through a network Geocoder, one lookup per
// call. Each lookup starts at least a fixed delay after the previous one
// returned. Every failure is a miss: there are no retries.
type Dynamic struct {
	geocoder Geocoder
	delay    time.Duration
	limiter  *rate.Limiter
	timeout  time.Duration
	bounds   spatial.Bounds
	logf     Logf

	Lookups int // lookups issued
	Misses  int // lookups that did not produce coordinates
}

// NewDynamic wraps g with throttling, a timeout and result validation.
func NewDynamic(g Geocoder, opts DynamicOptions) *Dynamic {
	delay := max(opts.Delay, MinDelay)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	bounds := BrazilBounds
	if opts.Bounds != nil {
		bounds = *opts.Bounds
	}

	return &Dynamic{
		geocoder: g,
		delay:    delay,
		limiter:  rate.NewLimiter(rate.Every(delay), 1),
		timeout:  timeout,
		bounds:   bounds,
		logf:     orDefault(opts.Logf),
	}
}

// rest empties the limiter at the end of a lookup, so the next one waits a
// full delay counted from now rather than from when this one started.
func (d *Dynamic) rest() {
	d.limiter = rate.NewLimiter(rate.Every(d.delay), 1)
	d.limiter.Allow()
}

// Resolve implements Resolver.
func (d *Dynamic) Resolve(ctx context.Context, municipality, region string) (spatial.Point, bool) {
	result, ok := d.Locate(ctx, municipality, region)
	if !ok {
		return spatial.Point{}, false
	}

	return result.Point(), true
}

// Locate implements Locator.
func (d *Dynamic) Locate(ctx context.Context, municipality, region string) (*GeocodingResult, bool) {
	if err := d.limiter.Wait(ctx); err != nil {
		d.Misses++
		d.logf("Erro ao obter coordenadas para %s, %s: %v", municipality, region, err)

		return nil, false
	}

	d.Lookups++
	defer d.rest()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	result, err := d.geocoder.Geocode(ctx, municipality, region)
	if err == nil && result == nil {
		err = &GeocodingError{Type: ErrorTypeNotFound, Message: "nenhum resultado"}
	}

	if err == nil {
		err = validateCoordinates(result.Point(), d.bounds)
	}

	if err != nil {
		d.Misses++
		d.logMiss(municipality, region, err)

		return nil, false
	}

	if result.Confidence == ConfidenceLow {
		d.logf("Coordenadas aproximadas para %s, %s: %s (%s, confiança %s)",
			municipality, region, result.DisplayName, result.Provider, result.Confidence)
	}

	return result, true
}

func (d *Dynamic) logMiss(municipality, region string, err error) {
	switch {
	case IsNotFoundError(err):
		d.logf("Coordenadas não encontradas para: %s, %s", municipality, region)
	case IsRateLimitError(err):
		d.logf("Limite de requisições atingido para %s, %s [%s]: %v; aumente --geocode-delay",
			municipality, region, TypeOf(err), err)
	case IsQuotaExceededError(err):
		d.logf("Cota do provedor esgotada para %s, %s [%s]: %v", municipality, region, TypeOf(err), err)
	case IsTimeoutError(err):
		d.logf("Tempo esgotado ao obter coordenadas para %s, %s [%s]: %v", municipality, region, TypeOf(err), err)
	default:
		d.logf("Erro ao obter coordenadas para %s, %s [%s]: %v", municipality, region, TypeOf(err), err)
	}
}
