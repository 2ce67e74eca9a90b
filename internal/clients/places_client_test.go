package clients

import (
	"context"
	"testing"

	"github.com/h2non/gock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illmade-knight/place-map/internal/observability"
	"github.com/illmade-knight/place-map/pkg/search"
)

func newPlacesTestClient(t *testing.T) *PlacesClient {
	t.Helper()
	client := NewPlacesClient(geocodeBaseURL, "test-key", observability.NewMetricsForTesting(), zerolog.Nop())
	gock.InterceptClient(client.httpClient)
	t.Cleanup(gock.Off)
	return client
}

func TestPlacesClient_Autocomplete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := newPlacesTestClient(t)
		gock.New(geocodeBaseURL).
			Get("/place/autocomplete/json").
			MatchParam("input", "temple bar").
			MatchParam("components", "country:ie").
			Reply(200).
			JSON(map[string]any{
				"status": "OK",
				"predictions": []map[string]any{
					{"place_id": "place-1", "description": "Temple Bar, Dublin"},
					{"place_id": "place-2", "description": "Temple Bar Gallery, Dublin"},
				},
			})

		suggestions, err := client.Autocomplete(ctx, "temple bar", search.Restrictions{Country: "IE"})

		require.NoError(t, err)
		require.Len(t, suggestions, 2)
		assert.Equal(t, "place-1", suggestions[0].PlaceID)
		assert.Equal(t, "Temple Bar, Dublin", suggestions[0].Description)
	})

	t.Run("ZeroResults", func(t *testing.T) {
		client := newPlacesTestClient(t)
		gock.New(geocodeBaseURL).
			Get("/place/autocomplete/json").
			Reply(200).
			JSON(map[string]any{"status": "ZERO_RESULTS"})

		suggestions, err := client.Autocomplete(ctx, "zzzz", search.Restrictions{})

		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})
}

func TestPlacesClient_Details(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := newPlacesTestClient(t)
		gock.New(geocodeBaseURL).
			Get("/place/details/json").
			MatchParam("place_id", "place-1").
			MatchParam("fields", "name,formatted_address,geometry").
			Reply(200).
			JSON(map[string]any{
				"status": "OK",
				"result": map[string]any{
					"name":              "Temple Bar",
					"formatted_address": "Temple Bar, Dublin 2, Ireland",
					"geometry": map[string]any{
						"location": map[string]any{"lat": 53.3454, "lng": -6.2646},
					},
				},
			})

		selection, err := client.Details(ctx, "place-1", []string{"name", "formatted_address", "geometry"})

		require.NoError(t, err)
		assert.Equal(t, "Temple Bar", selection.DisplayName)
		assert.Equal(t, "Temple Bar, Dublin 2, Ireland", selection.FormattedAddress)
		assert.InDelta(t, 53.3454, selection.Lat, 1e-9)
	})

	t.Run("NotFound", func(t *testing.T) {
		client := newPlacesTestClient(t)
		gock.New(geocodeBaseURL).
			Get("/place/details/json").
			Reply(200).
			JSON(map[string]any{"status": "NOT_FOUND"})

		_, err := client.Details(ctx, "gone", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "NOT_FOUND")
	})
}
