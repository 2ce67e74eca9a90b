// FILE: mapview/markers.go

package mapview

import (
	"fmt"
	"sync"

	"github.com/illmade-knight/place-map/pkg/geo"
)

// Marker is a visual handle bound to a point on the map. The provider
// exposes two incompatible marker implementations; the surface only ever
// talks to this interface.
type Marker interface {
	// Position returns the marker's current position, or an error when
	// the underlying handle cannot produce one.
	Position() (geo.Point, error)
	// SetPosition moves the marker in place, preserving its identity.
	SetPosition(p geo.Point)
	// Title returns the marker's display title.
	Title() string
	// Remove detaches the marker from the map surface.
	Remove()
	// SetOnClick registers the click forwarder. The last registration wins.
	SetOnClick(fn func())
	// Click simulates the user clicking the marker, invoking the forwarder.
	Click()
}

// LegacyMarker is the provider's older marker shape: the position is held
// as a plain field on the object.
type LegacyMarker struct {
	mu      sync.Mutex
	pos     geo.Point
	title   string
	onClick func()
	removed bool
}

// NewLegacyMarker creates a legacy marker at p.
func NewLegacyMarker(p geo.Point, title string) *LegacyMarker {
	return &LegacyMarker{pos: p, title: title}
}

func (m *LegacyMarker) Position() (geo.Point, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removed {
		return geo.Point{}, fmt.Errorf("legacy marker %q has been removed", m.title)
	}
	return m.pos, nil
}

func (m *LegacyMarker) SetPosition(p geo.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos = p
}

func (m *LegacyMarker) Title() string { return m.title }

func (m *LegacyMarker) Remove() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = true
}

func (m *LegacyMarker) SetOnClick(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClick = fn
}

func (m *LegacyMarker) Click() {
	m.mu.Lock()
	fn := m.onClick
	removed := m.removed
	m.mu.Unlock()
	if fn != nil && !removed {
		fn()
	}
}

// AdvancedMarker is the provider's newer marker shape: the position sits
// behind a zero-argument accessor rather than a field, and the marker
// only exists when the provider was loaded with a map identifier.
type AdvancedMarker struct {
	mu       sync.Mutex
	position func() geo.Point
	setPos   func(geo.Point)
	title    string
	onClick  func()
	removed  bool
}

// NewAdvancedMarker creates an advanced marker at p.
func NewAdvancedMarker(p geo.Point, title string) *AdvancedMarker {
	current := p
	m := &AdvancedMarker{title: title}
	m.position = func() geo.Point { return current }
	m.setPos = func(np geo.Point) { current = np }
	return m
}

func (m *AdvancedMarker) Position() (geo.Point, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.position == nil {
		return geo.Point{}, fmt.Errorf("advanced marker %q has no position accessor", m.title)
	}
	if m.removed {
		return geo.Point{}, fmt.Errorf("advanced marker %q has been removed", m.title)
	}
	return m.position(), nil
}

func (m *AdvancedMarker) SetPosition(p geo.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setPos != nil {
		m.setPos(p)
	}
}

func (m *AdvancedMarker) Title() string { return m.title }

func (m *AdvancedMarker) Remove() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = true
}

func (m *AdvancedMarker) SetOnClick(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClick = fn
}

func (m *AdvancedMarker) Click() {
	m.mu.Lock()
	fn := m.onClick
	removed := m.removed
	m.mu.Unlock()
	if fn != nil && !removed {
		fn()
	}
}
