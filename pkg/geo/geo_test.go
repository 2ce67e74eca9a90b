package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illmade-knight/place-map/pkg/geo"
)

func TestValid(t *testing.T) {
	testCases := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"origin", 0, 0, true},
		{"dublin", 53.3498, -6.2603, true},
		{"poles", 90, 180, true},
		{"negative extremes", -90, -180, true},
		{"latitude too high", 90.0001, 0, false},
		{"latitude too low", -91, 0, false},
		{"longitude too high", 0, 181, false},
		{"longitude too low", 0, -180.5, false},
		{"NaN latitude", math.NaN(), 0, false},
		{"NaN longitude", 0, math.NaN(), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, geo.Valid(tc.lat, tc.lng))
		})
	}
}

func TestBounds(t *testing.T) {
	t.Run("empty bounds have no center", func(t *testing.T) {
		var b geo.Bounds
		assert.True(t, b.Empty())
		assert.Zero(t, b.Size())
	})

	t.Run("single point", func(t *testing.T) {
		var b geo.Bounds
		b.Extend(geo.Point{Lat: 40.0, Lng: -75.0})

		assert.False(t, b.Empty())
		assert.Equal(t, 1, b.Size())
		assert.Equal(t, geo.Point{Lat: 40.0, Lng: -75.0}, b.Center())
	})

	t.Run("center of two points", func(t *testing.T) {
		var b geo.Bounds
		b.Extend(geo.Point{Lat: 10, Lng: 20})
		b.Extend(geo.Point{Lat: 30, Lng: 40})

		center := b.Center()
		assert.InDelta(t, 20.0, center.Lat, 1e-9)
		assert.InDelta(t, 30.0, center.Lng, 1e-9)
	})

	t.Run("invalid points are ignored", func(t *testing.T) {
		var b geo.Bounds
		b.Extend(geo.Point{Lat: math.NaN(), Lng: 0})
		b.Extend(geo.Point{Lat: 95, Lng: 0})

		assert.True(t, b.Empty())
	})
}

func TestNormalize(t *testing.T) {
	t.Run("plain number", func(t *testing.T) {
		v, err := geo.Normalize(53.3498)
		require.NoError(t, err)
		assert.InDelta(t, 53.3498, v, 1e-9)
	})

	t.Run("string number", func(t *testing.T) {
		v, err := geo.Normalize("-6.2603")
		require.NoError(t, err)
		assert.InDelta(t, -6.2603, v, 1e-9)
	})

	t.Run("integer", func(t *testing.T) {
		v, err := geo.Normalize(12)
		require.NoError(t, err)
		assert.InDelta(t, 12.0, v, 1e-9)
	})

	t.Run("accessor function", func(t *testing.T) {
		v, err := geo.Normalize(func() float64 { return 37.422 })
		require.NoError(t, err)
		assert.InDelta(t, 37.422, v, 1e-9)
	})

	t.Run("unparseable string", func(t *testing.T) {
		_, err := geo.Normalize("north-ish")
		require.Error(t, err)
	})

	t.Run("nil", func(t *testing.T) {
		_, err := geo.Normalize(nil)
		require.Error(t, err)
	})
}

func TestNormalizePoint(t *testing.T) {
	t.Run("mixed shapes", func(t *testing.T) {
		p, err := geo.NormalizePoint("53.3498", func() float64 { return -6.2603 })
		require.NoError(t, err)
		assert.InDelta(t, 53.3498, p.Lat, 1e-9)
		assert.InDelta(t, -6.2603, p.Lng, 1e-9)
	})

	t.Run("out of range is rejected", func(t *testing.T) {
		_, err := geo.NormalizePoint(91.0, 0.0)
		require.Error(t, err)
	})
}

func TestHaversine(t *testing.T) {
	dublin := geo.Point{Lat: 53.3498, Lng: -6.2603}
	london := geo.Point{Lat: 51.5074, Lng: -0.1278}

	distance := geo.Haversine(dublin, london)

	// Dublin to London is roughly 464 km.
	assert.InDelta(t, 464, distance, 5)
	assert.Zero(t, geo.Haversine(dublin, dublin))
}
