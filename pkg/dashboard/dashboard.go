// FILE: dashboard/dashboard.go

// Package dashboard routes user actions between the location store, the
// map surface and the geocoder, and keeps the marker registry reconciled
// with the stored location list.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/pkg/geo"
	"github.com/illmade-knight/place-map/pkg/geocode"
	"github.com/illmade-knight/place-map/pkg/locations"
	"github.com/illmade-knight/place-map/pkg/mapview"
	"github.com/illmade-knight/place-map/pkg/search"
)

// DialogState is the location-form dialog's position in its lifecycle.
type DialogState string

const (
	DialogClosed          DialogState = "CLOSED"
	DialogCreatingNew     DialogState = "CREATING_NEW"
	DialogEditingExisting DialogState = "EDITING_EXISTING"
)

// MapSurface is the contract the dashboard holds with the map. The
// dashboard never reaches into marker internals; everything goes through
// these methods.
type MapSurface interface {
	SetCenter(lat, lng float64, zoom ...int) bool
	UpsertMarker(id uuid.UUID, lat, lng float64, title string) (mapview.Marker, bool)
	RemoveMarker(id uuid.UUID) bool
	SetTemporaryMarker(lat, lng float64) (mapview.Marker, bool)
	ClearTemporaryMarker()
	FitAllMarkers() bool
	MarkerIDs() []uuid.UUID
}

// Form holds the location-form dialog's editable fields.
type Form struct {
	Name        string
	Address     string
	Lat         float64
	Lng         float64
	Description string
	Notes       string
}

// Config holds the dashboard's static settings.
type Config struct {
	// ViewZoom is the fixed zoom used when centering on a single location.
	ViewZoom int
	// RetryBackoff are the waits before re-attempting a failed center
	// call, covering a map surface that is not yet idle.
	RetryBackoff []time.Duration
}

// DefaultRetryBackoff is used when Config.RetryBackoff is empty.
var DefaultRetryBackoff = []time.Duration{
	100 * time.Millisecond,
	300 * time.Millisecond,
	600 * time.Millisecond,
}

// Dashboard is the orchestrator: a state machine over the location-form
// dialog plus a nullable "currently focused" location pointer.
type Dashboard struct {
	store    *locations.Service
	surface  MapSurface
	geocoder geocode.Geocoder
	clock    clockwork.Clock
	cfg      Config
	logger   zerolog.Logger

	mu        sync.Mutex
	ownerID   string
	state     DialogState
	form      Form
	editingID *uuid.UUID
	focused   *locations.Location
	lastErr   error
	closed    bool
}

// New creates a dashboard. The geocoder may be nil; address fill-in then
// reports the service unavailable instead of crashing.
func New(store *locations.Service, surface MapSurface, geocoder geocode.Geocoder, clock clockwork.Clock, cfg Config, logger zerolog.Logger) *Dashboard {
	if len(cfg.RetryBackoff) == 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}
	return &Dashboard{
		store:    store,
		surface:  surface,
		geocoder: geocoder,
		clock:    clock,
		cfg:      cfg,
		logger:   logger.With().Str("component", "dashboard").Logger(),
		state:    DialogClosed,
	}
}

// SetOwner records the session's owner id for subsequent creates.
func (d *Dashboard) SetOwner(ownerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ownerID = ownerID
	d.state = DialogClosed
	d.editingID = nil
	d.focused = nil
	d.lastErr = nil
}

// OpenAdd opens the dialog on an empty form.
func (d *Dashboard) OpenAdd() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogCreatingNew
	d.form = Form{}
	d.editingID = nil
	d.lastErr = nil
}

// OnPlaceSelected opens the dialog pre-filled from a search selection.
// The selection's coordinates are provisional: manual geocoding in the
// form may still overwrite them before save.
func (d *Dashboard) OnPlaceSelected(sel search.Selection) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.state = DialogCreatingNew
	d.editingID = nil
	d.lastErr = nil
	d.form = Form{
		Name:    sel.DisplayName,
		Address: sel.FormattedAddress,
		Lat:     sel.Lat,
		Lng:     sel.Lng,
	}
	d.mu.Unlock()

	d.surface.SetTemporaryMarker(sel.Lat, sel.Lng)
	d.surface.SetCenter(sel.Lat, sel.Lng, d.cfg.ViewZoom)
}

// OpenEdit opens the dialog on an existing location's current fields.
func (d *Dashboard) OpenEdit(id uuid.UUID) bool {
	loc, ok := d.store.Get(id)
	if !ok {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogEditingExisting
	d.editingID = &id
	d.lastErr = nil
	d.form = Form{
		Name:        loc.Name,
		Address:     loc.Address,
		Lat:         loc.Coords.Lat,
		Lng:         loc.Coords.Lng,
		Description: loc.Description,
		Notes:       loc.Notes,
	}
	return true
}

// View centers the map on a location at the fixed view zoom without any
// dialog transition. A failed center call is retried with increasing
// backoff, which covers the surface not yet being fully idle.
func (d *Dashboard) View(id uuid.UUID) bool {
	loc, ok := d.store.Get(id)
	if !ok {
		return false
	}

	d.mu.Lock()
	d.focused = &loc
	d.mu.Unlock()

	if d.surface.SetCenter(loc.Coords.Lat, loc.Coords.Lng, d.cfg.ViewZoom) {
		return true
	}
	for _, delay := range d.cfg.RetryBackoff {
		d.clock.Sleep(delay)
		if d.isClosed() {
			return false
		}
		if d.surface.SetCenter(loc.Coords.Lat, loc.Coords.Lng, d.cfg.ViewZoom) {
			return true
		}
	}
	d.logger.Warn().Stringer("location_id", id).Msg("view-on-map gave up after retries")
	return false
}

// Delete removes a location after the user has confirmed, then drops its
// marker and refits the viewport over the remainder.
func (d *Dashboard) Delete(ctx context.Context, id uuid.UUID) error {
	if err := d.store.Delete(ctx, id); err != nil {
		return err
	}

	d.mu.Lock()
	if d.focused != nil && d.focused.ID == id {
		d.focused = nil
	}
	d.mu.Unlock()

	d.surface.RemoveMarker(id)
	d.surface.FitAllMarkers()
	return nil
}

// Submit saves the open form: a create in CreatingNew, a merge in
// EditingExisting. On success the dialog closes; on failure it stays open
// with the error recorded for inline rendering.
func (d *Dashboard) Submit(ctx context.Context) (locations.Location, error) {
	d.mu.Lock()
	state := d.state
	form := d.form
	editingID := d.editingID
	ownerID := d.ownerID
	d.mu.Unlock()

	var (
		loc locations.Location
		err error
	)
	switch state {
	case DialogCreatingNew:
		loc, err = d.store.Create(ctx, ownerID, locations.Draft{
			Name:        form.Name,
			Address:     form.Address,
			Lat:         form.Lat,
			Lng:         form.Lng,
			Description: form.Description,
			Notes:       form.Notes,
		})
	case DialogEditingExisting:
		if editingID == nil {
			err = fmt.Errorf("%w: no location selected for editing", locations.ErrNotFound)
			break
		}
		loc, err = d.store.Update(ctx, *editingID, locations.Update{
			Name:        &form.Name,
			Address:     &form.Address,
			Lat:         &form.Lat,
			Lng:         &form.Lng,
			Description: &form.Description,
			Notes:       &form.Notes,
		})
	default:
		err = fmt.Errorf("no dialog open")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.lastErr = err
		return locations.Location{}, err
	}
	d.state = DialogClosed
	d.editingID = nil
	d.lastErr = nil
	d.surface.ClearTemporaryMarker()
	return loc, nil
}

// CloseDialog abandons the open form.
func (d *Dashboard) CloseDialog() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogClosed
	d.editingID = nil
	d.lastErr = nil
}

// SetForm replaces the dialog's editable fields from the UI binding.
func (d *Dashboard) SetForm(form Form) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form = form
}

// FillAddress reverse-geocodes the form's current coordinates and writes
// the formatted address back into the form.
func (d *Dashboard) FillAddress(ctx context.Context) error {
	d.mu.Lock()
	lat, lng := d.form.Lat, d.form.Lng
	d.mu.Unlock()

	if d.geocoder == nil {
		return geocode.ErrUnavailable
	}
	result, err := d.geocoder.Reverse(ctx, lat, lng)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.form.Address = result.FormattedAddress
	return nil
}

// OnMapClick previews a clicked point: drops the temporary marker, opens
// the dialog on a new draft at those coordinates and best-effort fills
// the address by reverse lookup.
func (d *Dashboard) OnMapClick(ctx context.Context, p geo.Point) {
	if d.isClosed() {
		return
	}

	d.surface.SetTemporaryMarker(p.Lat, p.Lng)

	d.mu.Lock()
	d.state = DialogCreatingNew
	d.editingID = nil
	d.lastErr = nil
	d.form = Form{Lat: p.Lat, Lng: p.Lng}
	d.mu.Unlock()

	if err := d.FillAddress(ctx); err != nil {
		d.logger.Debug().Err(err).Msg("no address for clicked point")
	}
}

// Reconcile diffs the stored location list against the marker registry:
// one upsert per location, removal of markers whose id is gone, then a
// single viewport fit for the whole batch.
func (d *Dashboard) Reconcile(list []locations.Location) {
	if d.isClosed() {
		return
	}

	seen := make(map[uuid.UUID]bool, len(list))
	for _, loc := range list {
		if _, ok := d.surface.UpsertMarker(loc.ID, loc.Coords.Lat, loc.Coords.Lng, loc.Name); ok {
			seen[loc.ID] = true
		} else {
			d.logger.Warn().Stringer("location_id", loc.ID).Msg("marker rejected during reconciliation")
		}
	}
	for _, id := range d.surface.MarkerIDs() {
		if !seen[id] {
			d.surface.RemoveMarker(id)
		}
	}

	d.mu.Lock()
	if d.focused != nil && !seen[d.focused.ID] {
		d.focused = nil
	}
	d.mu.Unlock()

	d.surface.FitAllMarkers()
	d.logger.Debug().Int("locations", len(list)).Msg("marker registry reconciled")
}

// Teardown marks the dashboard as gone. Late async results against a
// torn-down surface are dropped instead of applied.
func (d *Dashboard) Teardown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.state = DialogClosed
}

// State returns the dialog state.
func (d *Dashboard) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// FormData returns the dialog's current fields.
func (d *Dashboard) FormData() Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

// Err returns the error held for inline rendering, if any.
func (d *Dashboard) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Focused returns the currently focused location, or nil.
func (d *Dashboard) Focused() *locations.Location {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.focused == nil {
		return nil
	}
	loc := *d.focused
	return &loc
}

func (d *Dashboard) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
