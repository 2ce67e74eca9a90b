// FILE: geo/normalize.go

package geo

import (
	"fmt"
	"strconv"
)

// Normalize collapses the coordinate shapes that mapping and geocoding
// providers hand back into a plain float64. Depending on the provider
// SDK version a coordinate may arrive as a number, a string-encoded
// number, or a zero-argument accessor. Nothing past this function ever
// sees a provider-specific wrapper.
func Normalize(v any) (float64, error) {
	switch c := v.(type) {
	case float64:
		return c, nil
	case float32:
		return float64(c), nil
	case int:
		return float64(c), nil
	case int64:
		return float64(c), nil
	case string:
		f, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return 0, fmt.Errorf("coordinate string %q is not numeric: %w", c, err)
		}
		return f, nil
	case func() float64:
		if c == nil {
			return 0, fmt.Errorf("coordinate accessor is nil")
		}
		return c(), nil
	case nil:
		return 0, fmt.Errorf("coordinate is missing")
	default:
		return 0, fmt.Errorf("unsupported coordinate shape %T", v)
	}
}

// NormalizePoint normalizes a lat/lng pair and range-checks the result.
func NormalizePoint(lat, lng any) (Point, error) {
	la, err := Normalize(lat)
	if err != nil {
		return Point{}, fmt.Errorf("latitude: %w", err)
	}
	ln, err := Normalize(lng)
	if err != nil {
		return Point{}, fmt.Errorf("longitude: %w", err)
	}
	p := Point{Lat: la, Lng: ln}
	if !p.Valid() {
		return Point{}, fmt.Errorf("coordinates (%v, %v) are out of range", la, ln)
	}
	return p, nil
}
