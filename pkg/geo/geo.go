// FILE: geo/geo.go

package geo

import "math"

// Point is a geographic coordinate in WGS 84 degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether a latitude/longitude pair is a usable coordinate:
// finite numbers with |lat| <= 90 and |lng| <= 180. Every boundary that
// accepts coordinates from outside the core runs this exact check.
func Valid(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Valid reports whether the point passes the coordinate range check.
func (p Point) Valid() bool {
	return Valid(p.Lat, p.Lng)
}

// Bounds is a geographic bounding region built up from points.
// The zero value is empty; Extend the bounds with at least one point
// before reading its corners or center.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`

	count int
}

// Extend grows the bounds to include p. Invalid points are ignored.
func (b *Bounds) Extend(p Point) {
	if !p.Valid() {
		return
	}
	if b.count == 0 {
		b.MinLat, b.MaxLat = p.Lat, p.Lat
		b.MinLng, b.MaxLng = p.Lng, p.Lng
		b.count = 1
		return
	}
	b.MinLat = math.Min(b.MinLat, p.Lat)
	b.MaxLat = math.Max(b.MaxLat, p.Lat)
	b.MinLng = math.Min(b.MinLng, p.Lng)
	b.MaxLng = math.Max(b.MaxLng, p.Lng)
	b.count++
}

// Empty reports whether no valid point has been added.
func (b *Bounds) Empty() bool {
	return b.count == 0
}

// Size returns the number of points the bounds were extended with.
func (b *Bounds) Size() int {
	return b.count
}

// Center returns the midpoint of the bounding region. A bounds built
// from a single point returns that point unchanged.
func (b *Bounds) Center() Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}
