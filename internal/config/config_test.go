package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illmade-knight/place-map/internal/config"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("PLACEMAP_GCP_PROJECT_ID", "test-project")
	t.Setenv("PLACEMAP_MAPS_CREDENTIAL", "maps-key")
	t.Setenv("PLACEMAP_SEARCH_COUNTRY", "IE")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "test-project", cfg.GCP.ProjectID)
	assert.Equal(t, "maps-key", cfg.Maps.Credential)
	assert.Equal(t, "IE", cfg.Search.Country)

	// Defaults survive alongside environment overrides.
	assert.Equal(t, "locations", cfg.GCP.Collection)
	assert.Equal(t, 12, cfg.Maps.DefaultZoom)
	assert.Equal(t, []string{"name", "formatted_address", "geometry"}, cfg.Search.Fields)
}

func TestLoad_MissingProject(t *testing.T) {
	_, err := config.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gcp.project_id is required")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &config.Config{}
	cfg.Maps.DefaultLat = 91
	cfg.Maps.DefaultLng = -200

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "maps.default_lat")
	assert.Contains(t, err.Error(), "maps.default_lng")
	assert.Contains(t, err.Error(), "services.geocoding_base_url is required")
}
