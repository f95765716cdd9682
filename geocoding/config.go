// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mapavotos/mapavotos/utils/httputils"
)

// Resolver names accepted by New.
const (
	ResolverStatic    = "static"
	ResolverNominatim = "nominatim"
	ResolverGoogle    = "google"
)

// Config holds the environment driven settings of the network providers.
type Config struct {
	GoogleMapsAPIKey string `env:"GOOGLE_MAPS_API_KEY"`
	GoogleProjectID  string `env:"GOOGLE_CLOUD_PROJECT"`
	GoogleMapsURL    string `env:"GOOGLE_MAPS_URL"` // DefaultGoogleMapsURL when unset
	NominatimURL     string `env:"NOMINATIM_URL"`   // DefaultNominatimURL when unset
	UserAgent        string `env:"MAPAVOTOS_USER_AGENT"`
}

// ConfigFromEnv reads Config from the process environment. Variables that are
// unset keep the provider defaults.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		GoogleMapsURL: DefaultGoogleMapsURL,
		NominatimURL:  DefaultNominatimURL,
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}

// Options selects and tunes the resolvers built by New.
type Options struct {
	Resolvers  []string      // in lookup order, see ParseResolvers
	CoordsFile string        // optional YAML table merged into the static resolver
	Delay      time.Duration // spacing between network lookups
	Timeout    time.Duration // per network lookup
	UserAgent  string        // fallback when Config.UserAgent is empty
	Trace      io.Writer     // HTTP trace, nil disables it
	Logf       Logf

	lookupAPIKey func(ctx context.Context, projectID, displayName string) (string, error)
}

// ParseResolvers splits a comma separated list such as "static,nominatim".
func ParseResolvers(s string) ([]string, error) {
	var ret []string

	seen := make(map[string]bool)

	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		switch name {
		case ResolverStatic, ResolverNominatim, ResolverGoogle:
		default:
			return nil, fmt.Errorf("unknown resolver %q (expected %s, %s or %s)",
				name, ResolverStatic, ResolverNominatim, ResolverGoogle)
		}

		if seen[name] {
			return nil, fmt.Errorf("resolver %q listed twice", name)
		}

		seen[name] = true
		ret = append(ret, name)
	}

	if len(ret) == 0 {
		return nil, fmt.Errorf("no resolver selected")
	}

	return ret, nil
}

// New builds the resolver described by opts. A single name yields that
// resolver; several names yield a Chain.
func New(ctx context.Context, cfg Config, opts Options) (Resolver, error) {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = opts.UserAgent
	}

	client := httputils.NewClient(httputils.ClientOptions{
		Timeout:   DefaultTimeout,
		UserAgent: userAgent,
		Trace:     opts.Trace,
	})

	dynamic := DynamicOptions{
		Delay:   opts.Delay,
		Timeout: opts.Timeout,
		Logf:    opts.Logf,
	}

	chain := make(Chain, 0, len(opts.Resolvers))

	for _, name := range opts.Resolvers {
		switch name {
		case ResolverStatic:
			var extra []StaticEntry

			if opts.CoordsFile != "" {
				var err error
				if extra, err = LoadStaticFile(opts.CoordsFile); err != nil {
					return nil, err
				}
			}

			chain = append(chain, NewStatic(opts.Logf, extra...))
		case ResolverNominatim:
			chain = append(chain, NewDynamic(NewNominatim(cfg.NominatimURL, client), dynamic))
		case ResolverGoogle:
			key, err := googleAPIKey(ctx, cfg, opts)
			if err != nil {
				return nil, err
			}

			chain = append(chain, NewDynamic(NewGoogleMapsGeocoder(key, cfg.GoogleMapsURL, client), dynamic))
		default:
			return nil, fmt.Errorf("unknown resolver %q", name)
		}
	}

	switch len(chain) {
	case 0:
		return nil, fmt.Errorf("no resolver selected")
	case 1:
		return chain[0], nil
	default:
		return chain, nil
	}
}

func googleAPIKey(ctx context.Context, cfg Config, opts Options) (string, error) {
	if cfg.GoogleMapsAPIKey != "" {
		return cfg.GoogleMapsAPIKey, nil
	}

	lookup := opts.lookupAPIKey
	if lookup == nil {
		lookup = APIKeyFromADC
	}

	orDefault(opts.Logf)("GOOGLE_MAPS_API_KEY is not set. Attempting to retrieve via ADC...")

	key, err := lookup(ctx, cfg.GoogleProjectID, APIKeyDisplayName)
	if err != nil {
		return "", fmt.Errorf("GOOGLE_MAPS_API_KEY is not set and ADC failed: %w", err)
	}

	return key, nil
}
