package geo

import "math"

// Haversine calculates the great-circle distance between two points in kilometers.
func Haversine(a, b Point) float64 {
	const R = 6371 // Earth radius in kilometers
	dLat := (b.Lat - a.Lat) * (math.Pi / 180.0)
	dLng := (b.Lng - a.Lng) * (math.Pi / 180.0)
	latA := a.Lat * (math.Pi / 180.0)
	latB := b.Lat * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(latA)*math.Cos(latB)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return R * c
}
