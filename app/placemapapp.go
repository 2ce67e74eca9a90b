// Package app provides the central orchestrator for the place-map application.
package app

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/internal/observability"
	"github.com/illmade-knight/place-map/pkg/dashboard"
	"github.com/illmade-knight/place-map/pkg/geo"
	"github.com/illmade-knight/place-map/pkg/identity"
	"github.com/illmade-knight/place-map/pkg/locations"
	"github.com/illmade-knight/place-map/pkg/mapview"
	"github.com/illmade-knight/place-map/pkg/search"
)

// App is the central application struct. It holds all domain services and
// components, and owns the event subscriptions that connect them. Each
// subscription is made exactly once, in Start.
type App struct {
	Session     *identity.Session
	LocationSvc *locations.Service
	Surface     *mapview.Surface
	Search      *search.Widget
	Dashboard   *dashboard.Dashboard
	Metrics     *observability.Metrics
	Logger      zerolog.Logger

	unsubscribe []func()
}

// New creates a new, fully initialized App.
func New(
	session *identity.Session,
	locationSvc *locations.Service,
	surface *mapview.Surface,
	searchWidget *search.Widget,
	dash *dashboard.Dashboard,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *App {
	return &App{
		Session:     session,
		LocationSvc: locationSvc,
		Surface:     surface,
		Search:      searchWidget,
		Dashboard:   dash,
		Metrics:     metrics,
		Logger:      logger,
	}
}

// Start attaches the map surface, mounts the search widget and wires the
// event flow between the components. A failed attach or mount leaves the
// application running in degraded mode rather than stopping it.
func (a *App) Start(ctx context.Context, restrictions search.Restrictions) error {
	if err := a.Surface.Attach(); err != nil {
		a.Logger.Error().Err(err).Msg("Map surface unavailable, continuing without map")
	}
	if err := a.Search.Mount(restrictions); err != nil {
		if !errors.Is(err, search.ErrMount) {
			return err
		}
		a.Logger.Warn().Msg("Search unavailable, manual entry only")
	}

	// 1. Session changes drive the location list: load on sign-in, clear
	// on sign-out.
	a.track(a.Session.Changes().Subscribe(func(user *identity.User) {
		if user == nil {
			a.Dashboard.SetOwner("")
			a.Dashboard.Reconcile(nil)
			return
		}
		a.Dashboard.SetOwner(user.ID)
		if _, err := a.LocationSvc.List(ctx, user.ID); err != nil {
			a.Logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to load locations after sign-in")
		}
	}))

	// 2. Every store snapshot change reconciles the marker registry.
	a.track(a.LocationSvc.Changes().Subscribe(func(list []locations.Location) {
		a.Dashboard.Reconcile(list)
		if a.Metrics != nil {
			a.Metrics.Reconciliations.Inc()
			a.Metrics.ActiveMarkers.Set(float64(a.Surface.MarkerCount()))
		}
	}))

	// 3. A resolved search selection opens the pre-filled dialog.
	a.track(a.Search.Selections().Subscribe(func(sel search.Selection) {
		a.Dashboard.OnPlaceSelected(sel)
	}))

	// 4. Marker clicks focus and center; map clicks preview a new draft.
	a.track(a.Surface.MarkerClicks().Subscribe(func(id uuid.UUID) {
		a.Dashboard.View(id)
	}))
	a.track(a.Surface.MapClicks().Subscribe(func(p geo.Point) {
		a.Dashboard.OnMapClick(ctx, p)
	}))

	a.Logger.Info().Msg("Application started")
	return nil
}

// Stop drops all event subscriptions and tears the dashboard down so late
// async results are discarded.
func (a *App) Stop() {
	for _, cancel := range a.unsubscribe {
		cancel()
	}
	a.unsubscribe = nil
	a.Dashboard.Teardown()
	a.Logger.Info().Msg("Application stopped")
}

func (a *App) track(cancel func()) {
	a.unsubscribe = append(a.unsubscribe, cancel)
}
