package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/internal/observability"
	"github.com/illmade-knight/place-map/pkg/geo"
	"github.com/illmade-knight/place-map/pkg/geocode"
	"github.com/illmade-knight/place-map/pkg/search"
)

// PlacesClient serves address autocomplete and place details from a
// Google-style places REST endpoint.
type PlacesClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     zerolog.Logger
}

// NewPlacesClient creates a new client for the places service.
func NewPlacesClient(baseURL, apiKey string, metrics *observability.Metrics, logger zerolog.Logger) *PlacesClient {
	return &PlacesClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		metrics: metrics,
		logger:  logger.With().Str("client", "places").Logger(),
	}
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		PlaceID     string `json:"place_id"`
		Description string `json:"description"`
	} `json:"predictions"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat any `json:"lat"`
				Lng any `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

// Autocomplete returns predictions for the typed input.
func (c *PlacesClient) Autocomplete(ctx context.Context, input string, restrictions search.Restrictions) ([]search.Suggestion, error) {
	query := url.Values{}
	query.Set("input", input)
	query.Set("key", c.apiKey)
	if restrictions.Country != "" {
		query.Set("components", "country:"+strings.ToLower(restrictions.Country))
	}
	endpoint := fmt.Sprintf("%s/place/autocomplete/json?%s", c.baseURL, query.Encode())

	var body autocompleteResponse
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		c.count("autocomplete", observability.OutcomeError)
		return nil, err
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		c.count("autocomplete", observability.OutcomeEmpty)
		return nil, nil
	default:
		c.count("autocomplete", observability.OutcomeError)
		return nil, fmt.Errorf("places autocomplete status %s", body.Status)
	}

	suggestions := make([]search.Suggestion, 0, len(body.Predictions))
	for _, p := range body.Predictions {
		suggestions = append(suggestions, search.Suggestion{
			PlaceID:     p.PlaceID,
			Description: p.Description,
		})
	}
	c.count("autocomplete", observability.OutcomeOK)
	return suggestions, nil
}

// Details resolves a prediction to a full place record.
func (c *PlacesClient) Details(ctx context.Context, placeID string, fields []string) (search.Selection, error) {
	query := url.Values{}
	query.Set("place_id", placeID)
	query.Set("key", c.apiKey)
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}
	endpoint := fmt.Sprintf("%s/place/details/json?%s", c.baseURL, query.Encode())

	var body detailsResponse
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		c.count("details", observability.OutcomeError)
		return search.Selection{}, err
	}
	if body.Status != "OK" {
		c.count("details", observability.OutcomeError)
		return search.Selection{}, fmt.Errorf("place details status %s", body.Status)
	}

	point, err := geo.NormalizePoint(body.Result.Geometry.Location.Lat, body.Result.Geometry.Location.Lng)
	if err != nil {
		c.count("details", observability.OutcomeError)
		return search.Selection{}, fmt.Errorf("place details for %s: %w", placeID, err)
	}

	c.count("details", observability.OutcomeOK)
	c.logger.Debug().Str("place_id", placeID).Msg("place details resolved")
	return search.Selection{
		Result: geocode.Result{
			Lat:              point.Lat,
			Lng:              point.Lng,
			FormattedAddress: body.Result.FormattedAddress,
		},
		DisplayName: body.Result.Name,
	}, nil
}

func (c *PlacesClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create places request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute places request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places service returned unexpected status code: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *PlacesClient) count(operation, outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.PlacesRequests.WithLabelValues(operation, outcome).Inc()
}
