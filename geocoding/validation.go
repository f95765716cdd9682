// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"fmt"

	"github.com/mapavotos/mapavotos/spatial"
)

// BrazilBounds covers Brazil, islands included, with a margin of roughly a
// degree for geocoder imprecision.
var BrazilBounds = spatial.Bounds{
	MinLat: -35.0,
	MaxLat: 6.0,
	MinLng: -75.0,
	MaxLng: -28.0,
}

// validateCoordinates verifica que as coordenadas sejam válidas e caiam dentro de bounds.
func validateCoordinates(p spatial.Point, bounds spatial.Bounds) error {
	if err := p.Validate(); err != nil {
		return &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "coordenadas inválidas", Err: err}
	}

	if !bounds.Contains(p) {
		return &GeocodingError{
			Type: ErrorTypeOutOfBounds,
			Message: fmt.Sprintf(
				"coordenadas fora dos limites (lat %.1f a %.1f, lng %.1f a %.1f): %s",
				bounds.MinLat, bounds.MaxLat, bounds.MinLng, bounds.MaxLng, p,
			),
		}
	}

	return nil
}
