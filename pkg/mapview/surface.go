// FILE: mapview/surface.go

// Package mapview owns the single map instance: its viewport (center,
// zoom, bounds) and the registry of markers keyed by location id.
package mapview

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/pkg/events"
	"github.com/illmade-knight/place-map/pkg/geo"
)

// Config holds the static view settings loaded at startup.
type Config struct {
	DefaultCenter    geo.Point
	DefaultZoom      int
	SingleResultZoom int
}

// Surface is the authoritative view state of the map. At most one active
// map instance exists; markers are owned exclusively by the surface and
// mutated only through its methods.
type Surface struct {
	sdk    *SDK
	cfg    Config
	logger zerolog.Logger

	mu       sync.Mutex
	attached bool
	center   geo.Point
	zoom     int
	bounds   geo.Bounds

	markers map[uuid.UUID]Marker
	temp    Marker

	markerClicks *events.Emitter[uuid.UUID]
	mapClicks    *events.Emitter[geo.Point]
}

// NewSurface creates the surface over a loaded SDK. The map instance is
// not active until Attach is called.
func NewSurface(sdk *SDK, cfg Config, logger zerolog.Logger) *Surface {
	return &Surface{
		sdk:          sdk,
		cfg:          cfg,
		logger:       logger.With().Str("component", "map-surface").Logger(),
		markers:      make(map[uuid.UUID]Marker),
		markerClicks: events.NewEmitter[uuid.UUID](),
		mapClicks:    events.NewEmitter[geo.Point](),
	}
}

// Attach activates the map instance at the configured default viewport.
// Calling it while already attached is a no-op; a second map instance is
// never created.
func (s *Surface) Attach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sdk == nil {
		return fmt.Errorf("mapview: no provider loaded, surface unavailable")
	}
	if s.attached {
		s.logger.Debug().Msg("surface already attached, ignoring")
		return nil
	}
	s.attached = true
	s.center = s.cfg.DefaultCenter
	s.zoom = s.cfg.DefaultZoom
	s.logger.Info().
		Float64("lat", s.center.Lat).
		Float64("lng", s.center.Lng).
		Int("zoom", s.zoom).
		Msg("map surface attached")
	return nil
}

// Attached reports whether the map instance is active.
func (s *Surface) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

// SetCenter moves the viewport. Non-finite or out-of-range coordinates
// are rejected with false, never a panic; an unattached surface also
// reports false so callers can retry once the map is idle. This call
// never touches markers.
func (s *Surface) SetCenter(lat, lng float64, zoom ...int) bool {
	if !geo.Valid(lat, lng) {
		s.logger.Warn().Float64("lat", lat).Float64("lng", lng).Msg("rejecting invalid center")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return false
	}
	s.center = geo.Point{Lat: lat, Lng: lng}
	if len(zoom) > 0 {
		s.zoom = zoom[0]
	}
	return true
}

// UpsertMarker places or moves the marker for a location. An existing
// marker is moved in place, preserving its identity; a new one gets a
// click forwarder that republishes the location id on the marker-click
// emitter.
func (s *Surface) UpsertMarker(id uuid.UUID, lat, lng float64, title string) (Marker, bool) {
	if !geo.Valid(lat, lng) {
		s.logger.Warn().Stringer("location_id", id).Float64("lat", lat).Float64("lng", lng).Msg("rejecting invalid marker position")
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return nil, false
	}

	p := geo.Point{Lat: lat, Lng: lng}
	if existing, ok := s.markers[id]; ok {
		existing.SetPosition(p)
		return existing, true
	}

	m := s.sdk.NewMarker(p, title)
	m.SetOnClick(func() {
		s.markerClicks.Publish(id)
	})
	s.markers[id] = m
	return m, true
}

// RemoveMarker drops a location's marker from the registry and the
// surface. Returns false if no marker is registered for the id.
func (s *Surface) RemoveMarker(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.markers[id]
	if !ok {
		return false
	}
	m.Remove()
	delete(s.markers, id)
	return true
}

// SetTemporaryMarker previews an unsaved point. At most one temporary
// marker exists; placing a new one destroys the previous one first.
func (s *Surface) SetTemporaryMarker(lat, lng float64) (Marker, bool) {
	if !geo.Valid(lat, lng) {
		s.logger.Warn().Float64("lat", lat).Float64("lng", lng).Msg("rejecting invalid temporary marker position")
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return nil, false
	}

	if s.temp != nil {
		s.temp.Remove()
	}
	s.temp = s.sdk.NewMarker(geo.Point{Lat: lat, Lng: lng}, "")
	return s.temp, true
}

// ClearTemporaryMarker removes the preview marker, if any.
func (s *Surface) ClearTemporaryMarker() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.temp != nil {
		s.temp.Remove()
		s.temp = nil
	}
}

// FitAllMarkers recomputes the viewport as the bounding region over every
// registered marker's current position. Markers whose position cannot be
// determined are logged and skipped. Returns false, leaving the viewport
// untouched, when no marker yields a valid position. A single marker
// collapses the region to a point, so zoom is forced to the configured
// single-result level.
func (s *Surface) FitAllMarkers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return false
	}

	var bounds geo.Bounds
	for id, m := range s.markers {
		pos, err := m.Position()
		if err != nil {
			s.logger.Warn().Err(err).Stringer("location_id", id).Msg("skipping marker without a readable position")
			continue
		}
		bounds.Extend(pos)
	}
	if bounds.Empty() {
		return false
	}

	s.bounds = bounds
	s.center = bounds.Center()
	if bounds.Size() == 1 {
		s.zoom = s.cfg.SingleResultZoom
	}
	return true
}

// HandleMapClick feeds a click on the map background into the map-click
// emitter after the usual coordinate check.
func (s *Surface) HandleMapClick(lat, lng float64) bool {
	if !geo.Valid(lat, lng) {
		return false
	}
	s.mapClicks.Publish(geo.Point{Lat: lat, Lng: lng})
	return true
}

// MarkerClicks emits the location id of a clicked marker.
func (s *Surface) MarkerClicks() *events.Emitter[uuid.UUID] {
	return s.markerClicks
}

// MapClicks emits clicks on the map background.
func (s *Surface) MapClicks() *events.Emitter[geo.Point] {
	return s.mapClicks
}

// MarkerIDs returns the ids currently in the marker registry.
func (s *Surface) MarkerIDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(s.markers))
	for id := range s.markers {
		ids = append(ids, id)
	}
	return ids
}

// MarkerCount returns the number of registered markers.
func (s *Surface) MarkerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.markers)
}

// Marker returns the registered marker for a location id.
func (s *Surface) Marker(id uuid.UUID) (Marker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.markers[id]
	return m, ok
}

// Center returns the current viewport center.
func (s *Surface) Center() geo.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center
}

// Zoom returns the current zoom level.
func (s *Surface) Zoom() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}

// Bounds returns the last fitted bounding region, and whether one exists.
func (s *Surface) Bounds() (geo.Bounds, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds, !s.bounds.Empty()
}
