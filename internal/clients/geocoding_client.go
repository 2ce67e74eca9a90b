// Package clients provides HTTP clients for communicating with external services.
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/internal/observability"
	"github.com/illmade-knight/place-map/pkg/geo"
	"github.com/illmade-knight/place-map/pkg/geocode"
)

// GeocodingClient resolves addresses to coordinates and back via a
// Google-style geocoding REST endpoint.
type GeocodingClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     zerolog.Logger
}

// NewGeocodingClient creates a new client for the geocoding service.
// Metrics may be nil when instrumentation is not wired.
func NewGeocodingClient(baseURL, apiKey string, metrics *observability.Metrics, logger zerolog.Logger) *GeocodingClient {
	return &GeocodingClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		metrics: metrics,
		logger:  logger.With().Str("client", "geocoding").Logger(),
	}
}

// geocodeResponse mirrors the service's wire format. Coordinates are
// decoded as `any` because the upstream has shipped them as numbers,
// strings and nested accessor shapes at different times; normalization
// happens in one place after decode.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat any `json:"lat"`
				Lng any `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		AddressComponents []struct {
			LongName  string   `json:"long_name"`
			ShortName string   `json:"short_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// Forward resolves a free-text address to coordinates.
func (c *GeocodingClient) Forward(ctx context.Context, address string) (geocode.Result, error) {
	query := url.Values{}
	query.Set("address", address)
	result, err := c.geocode(ctx, query)
	c.count("forward", err)
	return result, err
}

// Reverse resolves coordinates to the nearest formatted address.
func (c *GeocodingClient) Reverse(ctx context.Context, lat, lng float64) (geocode.Result, error) {
	query := url.Values{}
	query.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	result, err := c.geocode(ctx, query)
	c.count("reverse", err)
	return result, err
}

func (c *GeocodingClient) geocode(ctx context.Context, query url.Values) (geocode.Result, error) {
	query.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s/geocode/json?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("failed to create geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("%w: %v", geocode.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geocode.Result{}, fmt.Errorf("%w: geocoding service returned status %d", geocode.ErrUnavailable, resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geocode.Result{}, fmt.Errorf("%w: %v", geocode.ErrUnavailable, err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return geocode.Result{}, geocode.ErrNoResults
	default:
		return geocode.Result{}, fmt.Errorf("%w: geocoding status %s", geocode.ErrUnavailable, body.Status)
	}
	if len(body.Results) == 0 {
		return geocode.Result{}, geocode.ErrNoResults
	}

	first := body.Results[0]
	point, err := geo.NormalizePoint(first.Geometry.Location.Lat, first.Geometry.Location.Lng)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("%w: %v", geocode.ErrUnavailable, err)
	}

	result := geocode.Result{
		Lat:              point.Lat,
		Lng:              point.Lng,
		FormattedAddress: first.FormattedAddress,
	}
	for _, component := range first.AddressComponents {
		for _, kind := range component.Types {
			switch kind {
			case "locality":
				result.City = component.LongName
			case "administrative_area_level_1":
				result.State = component.ShortName
			case "country":
				result.Country = component.LongName
			case "postal_code":
				result.PostalCode = component.LongName
			}
		}
	}

	c.logger.Debug().Str("address", result.FormattedAddress).Msg("geocode resolved")
	return result, nil
}

func (c *GeocodingClient) count(operation string, err error) {
	if c.metrics == nil {
		return
	}
	outcome := observability.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, geocode.ErrNoResults):
		outcome = observability.OutcomeEmpty
	default:
		outcome = observability.OutcomeError
	}
	c.metrics.GeocodeRequests.WithLabelValues(operation, outcome).Inc()
}
