package app_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illmade-knight/place-map/app"
	"github.com/illmade-knight/place-map/internal/observability"
	"github.com/illmade-knight/place-map/pkg/dashboard"
	"github.com/illmade-knight/place-map/pkg/geo"
	"github.com/illmade-knight/place-map/pkg/geocode"
	"github.com/illmade-knight/place-map/pkg/identity"
	"github.com/illmade-knight/place-map/pkg/locations"
	"github.com/illmade-knight/place-map/pkg/mapview"
	"github.com/illmade-knight/place-map/pkg/search"
)

type fakeProvider struct{}

func (fakeProvider) SignIn(_ context.Context, email, _ string) (identity.User, error) {
	return identity.User{ID: "id-" + email, Email: email}, nil
}

func (fakeProvider) SignUp(_ context.Context, email, _ string) (identity.User, error) {
	return identity.User{ID: "id-" + email, Email: email}, nil
}

func (fakeProvider) SignOut(context.Context) error { return nil }

type fakePlaces struct{}

func (fakePlaces) Autocomplete(context.Context, string, search.Restrictions) ([]search.Suggestion, error) {
	return []search.Suggestion{{PlaceID: "p1", Description: "Temple Bar"}}, nil
}

func (fakePlaces) Details(context.Context, string, []string) (search.Selection, error) {
	return search.Selection{
		Result:      geocode.Result{Lat: 53.3454, Lng: -6.2646, FormattedAddress: "Temple Bar, Dublin 2"},
		DisplayName: "Temple Bar",
	}, nil
}

type fixture struct {
	app     *app.App
	remote  *locations.InMemoryRemoteStore
	session *identity.Session
	surface *mapview.Surface
	dash    *dashboard.Dashboard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zerolog.Nop()
	clock := clockwork.NewRealClock()

	remote := locations.NewInMemoryRemoteStore()
	service := locations.NewService(remote, clock, nil, logger)
	session := identity.NewSession(fakeProvider{}, logger)

	sdk, err := mapview.LoadSDK(mapview.SDKConfig{Credential: "test"}, logger)
	require.NoError(t, err)
	surface := mapview.NewSurface(sdk, mapview.Config{
		DefaultCenter:    geo.Point{Lat: 53.3498, Lng: -6.2603},
		DefaultZoom:      12,
		SingleResultZoom: 14,
	}, logger)

	widget := search.NewWidget(fakePlaces{}, nil, logger)
	dash := dashboard.New(service, surface, nil, clock, dashboard.Config{ViewZoom: 15}, logger)

	application := app.New(session, service, surface, widget, dash, observability.NewMetricsForTesting(), logger)
	require.NoError(t, application.Start(context.Background(), search.Restrictions{}))
	t.Cleanup(application.Stop)

	return &fixture{app: application, remote: remote, session: session, surface: surface, dash: dash}
}

func seedLocation(t *testing.T, remote *locations.InMemoryRemoteStore, ownerID, name string, p geo.Point) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, remote.Insert(context.Background(), locations.Location{
		ID:      id,
		OwnerID: ownerID,
		Name:    name,
		Coords:  p,
	}))
	return id
}

func TestApp_SignInLoadsAndReconciles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	homeID := seedLocation(t, f.remote, "id-ada@example.com", "Home", geo.Point{Lat: 53.3498, Lng: -6.2603})
	seedLocation(t, f.remote, "id-someone-else", "Other", geo.Point{Lat: 1, Lng: 1})

	_, err := f.session.SignIn(ctx, "ada@example.com", "pw")
	require.NoError(t, err)

	// Only the signed-in user's location reached the map.
	assert.Equal(t, 1, f.surface.MarkerCount())
	_, ok := f.surface.Marker(homeID)
	assert.True(t, ok)
}

func TestApp_SignOutClearsMarkers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedLocation(t, f.remote, "id-ada@example.com", "Home", geo.Point{Lat: 53.3498, Lng: -6.2603})

	_, err := f.session.SignIn(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, 1, f.surface.MarkerCount())

	require.NoError(t, f.session.SignOut(ctx))
	assert.Zero(t, f.surface.MarkerCount())
}

func TestApp_MarkerClickFocusesLocation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	homeID := seedLocation(t, f.remote, "id-ada@example.com", "Home", geo.Point{Lat: 53.3498, Lng: -6.2603})

	_, err := f.session.SignIn(ctx, "ada@example.com", "pw")
	require.NoError(t, err)

	marker, ok := f.surface.Marker(homeID)
	require.True(t, ok)
	marker.Click()

	require.NotNil(t, f.dash.Focused())
	assert.Equal(t, homeID, f.dash.Focused().ID)
	assert.Equal(t, 15, f.surface.Zoom())
}

func TestApp_SearchSelectionOpensDialog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.session.SignIn(ctx, "ada@example.com", "pw")
	require.NoError(t, err)

	suggestions, err := f.app.Search.Query(ctx, "temple")
	require.NoError(t, err)
	require.NoError(t, f.app.Search.Select(ctx, suggestions[0]))

	assert.Equal(t, dashboard.DialogCreatingNew, f.dash.State())
	form := f.dash.FormData()
	assert.Equal(t, "Temple Bar", form.Name)
	assert.InDelta(t, 53.3454, form.Lat, 1e-9)
}

func TestApp_MapClickOpensDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.session.SignIn(ctx, "ada@example.com", "pw")
	require.NoError(t, err)

	require.True(t, f.surface.HandleMapClick(53.0, -6.0))

	assert.Equal(t, dashboard.DialogCreatingNew, f.dash.State())
	assert.Equal(t, 53.0, f.dash.FormData().Lat)
}

func TestApp_StopDropsSubscriptions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedLocation(t, f.remote, "id-ada@example.com", "Home", geo.Point{Lat: 53.3498, Lng: -6.2603})

	f.app.Stop()

	_, err := f.session.SignIn(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Zero(t, f.surface.MarkerCount())
}
