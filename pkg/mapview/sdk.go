// FILE: mapview/sdk.go

package mapview

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/pkg/geo"
)

// SDKConfig describes how the mapping provider is loaded. Credential is
// the provider API key; MapID is the companion configuration the advanced
// marker implementation requires.
type SDKConfig struct {
	Credential string
	MapID      string
}

// SDK is the handle to a loaded mapping provider. It decides which of the
// two marker implementations new markers get: advanced when a map
// identifier was configured, legacy otherwise.
type SDK struct {
	credential string
	mapID      string
	advanced   bool
	logger     zerolog.Logger
}

// LoadSDK initializes the provider once, keyed by the API credential.
// A missing credential is a load failure; callers degrade the map area
// and keep the rest of the application usable.
func LoadSDK(cfg SDKConfig, logger zerolog.Logger) (*SDK, error) {
	if cfg.Credential == "" {
		return nil, fmt.Errorf("mapview: provider credential is not configured")
	}

	sdk := &SDK{
		credential: cfg.Credential,
		mapID:      cfg.MapID,
		advanced:   cfg.MapID != "",
		logger:     logger.With().Str("component", "map-sdk").Logger(),
	}
	if !sdk.advanced {
		sdk.logger.Warn().Msg("no map identifier configured, falling back to legacy markers")
	}
	return sdk, nil
}

// AdvancedMarkers reports whether the advanced marker implementation is
// available.
func (s *SDK) AdvancedMarkers() bool {
	return s.advanced
}

// NewMarker constructs a marker at p using the best available
// implementation.
func (s *SDK) NewMarker(p geo.Point, title string) Marker {
	if s.advanced {
		return NewAdvancedMarker(p, title)
	}
	return NewLegacyMarker(p, title)
}
