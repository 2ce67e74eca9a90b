// FILE: search/widget.go

// Package search wraps the provider's address-autocomplete capability and
// turns raw selections into normalized place records.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/pkg/events"
	"github.com/illmade-knight/place-map/pkg/geocode"
)

// ErrMount is returned when the autocomplete capability is unavailable.
// It marks a degraded-mode condition: the rest of the application stays
// usable with manual coordinate entry.
var ErrMount = errors.New("search: autocomplete unavailable")

// Suggestion is a single autocomplete prediction. It carries no
// coordinates; those arrive with the details fetch on selection.
type Suggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// Selection is a normalized place record: the forward-lookup shape plus a
// display name.
type Selection struct {
	geocode.Result
	DisplayName string `json:"display_name"`
}

// Restrictions narrow autocomplete results, e.g. to one country.
type Restrictions struct {
	Country string
}

// PlacesAPI is the provider's autocomplete surface: predictions for a
// typed query and a details fetch for a chosen prediction.
type PlacesAPI interface {
	Autocomplete(ctx context.Context, input string, restrictions Restrictions) ([]Suggestion, error)
	Details(ctx context.Context, placeID string, fields []string) (Selection, error)
}

// Widget binds the autocomplete capability to the application. A widget
// must be mounted before queries run.
type Widget struct {
	api          PlacesAPI
	fields       []string
	restrictions Restrictions
	mounted      bool
	logger       zerolog.Logger

	selections *events.Emitter[Selection]
}

// NewWidget creates a search widget over a places API. A nil api is
// allowed; Mount then reports the degraded condition.
func NewWidget(api PlacesAPI, fields []string, logger zerolog.Logger) *Widget {
	return &Widget{
		api:        api,
		fields:     fields,
		logger:     logger.With().Str("component", "search-widget").Logger(),
		selections: events.NewEmitter[Selection](),
	}
}

// Mount attaches the widget. When the provider's autocomplete capability
// is missing the widget reports ErrMount and stays unmounted — an error
// state, not a crash.
func (w *Widget) Mount(restrictions Restrictions) error {
	if w.api == nil {
		w.logger.Error().Msg("places capability unavailable, search disabled")
		return ErrMount
	}
	w.restrictions = restrictions
	w.mounted = true
	w.logger.Info().Str("country", restrictions.Country).Msg("search widget mounted")
	return nil
}

// Mounted reports whether the widget is usable.
func (w *Widget) Mounted() bool {
	return w.mounted
}

// Query returns autocomplete predictions for the typed input.
func (w *Widget) Query(ctx context.Context, input string) ([]Suggestion, error) {
	if !w.mounted {
		return nil, ErrMount
	}
	return w.api.Autocomplete(ctx, input, w.restrictions)
}

// Select resolves a prediction. The details fetch runs first; only a
// fully resolved place is published on the selection emitter.
func (w *Widget) Select(ctx context.Context, s Suggestion) error {
	if !w.mounted {
		return ErrMount
	}

	selection, err := w.api.Details(ctx, s.PlaceID, w.fields)
	if err != nil {
		return fmt.Errorf("place details for %q: %w", s.PlaceID, err)
	}
	if selection.DisplayName == "" {
		selection.DisplayName = s.Description
	}

	w.logger.Debug().Str("place_id", s.PlaceID).Str("name", selection.DisplayName).Msg("place selected")
	w.selections.Publish(selection)
	return nil
}

// Selections emits normalized place records after a details fetch.
func (w *Widget) Selections() *events.Emitter[Selection] {
	return w.selections
}
