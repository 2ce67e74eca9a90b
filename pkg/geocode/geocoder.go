// FILE: geocode/geocoder.go

// Package geocode defines the contract for address-to-coordinate and
// coordinate-to-address lookups against an external geocoding provider.
package geocode

import (
	"context"
	"errors"
)

var (
	// ErrNoResults is returned when the provider finds nothing for a query.
	ErrNoResults = errors.New("geocode: no results")
	// ErrUnavailable is returned when the geocoding service is not
	// initialized or cannot be reached.
	ErrUnavailable = errors.New("geocode: service unavailable")
)

// Result is a normalized geocoding answer. Coordinates are always plain
// numbers; provider wrapper shapes are collapsed before a Result is built.
type Result struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
	City             string  `json:"city,omitempty"`
	State            string  `json:"state,omitempty"`
	Country          string  `json:"country,omitempty"`
	PostalCode       string  `json:"postal_code,omitempty"`
}

// Geocoder resolves location data. It has no map side effects; callers
// decide what to do with the resolved coordinates.
type Geocoder interface {
	// Forward converts an address to coordinates and address details.
	Forward(ctx context.Context, address string) (Result, error)

	// Reverse converts coordinates to address details.
	Reverse(ctx context.Context, lat, lng float64) (Result, error)
}
