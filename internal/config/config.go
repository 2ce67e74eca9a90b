// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Maps     MapsConfig     `mapstructure:"maps"`
	Search   SearchConfig   `mapstructure:"search"`
	Services ServicesConfig `mapstructure:"services"`
	GCP      GCPConfig      `mapstructure:"gcp"`
	LogLevel string         `mapstructure:"log_level"`
}

// MapsConfig holds the map surface settings.
type MapsConfig struct {
	Credential       string  `mapstructure:"credential"`
	MapID            string  `mapstructure:"map_id"`
	DefaultLat       float64 `mapstructure:"default_lat"`
	DefaultLng       float64 `mapstructure:"default_lng"`
	DefaultZoom      int     `mapstructure:"default_zoom"`
	ViewZoom         int     `mapstructure:"view_zoom"`
	SingleResultZoom int     `mapstructure:"single_result_zoom"`
}

// SearchConfig holds the autocomplete settings.
type SearchConfig struct {
	Country string   `mapstructure:"country"`
	Fields  []string `mapstructure:"fields"`
}

// ServicesConfig holds the endpoints of the external services.
type ServicesConfig struct {
	GeocodingBaseURL string `mapstructure:"geocoding_base_url"`
	PlacesBaseURL    string `mapstructure:"places_base_url"`
	IdentityBaseURL  string `mapstructure:"identity_base_url"`
}

// GCPConfig holds the Firestore connection settings.
type GCPConfig struct {
	ProjectID  string `mapstructure:"project_id"`
	Collection string `mapstructure:"collection"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults. Empty defaults also register the key with viper so an
	// environment override can bind to it.
	v.SetDefault("maps.credential", "")
	v.SetDefault("maps.map_id", "")
	v.SetDefault("gcp.project_id", "")
	v.SetDefault("maps.default_lat", 53.3498)
	v.SetDefault("maps.default_lng", -6.2603)
	v.SetDefault("maps.default_zoom", 12)
	v.SetDefault("maps.view_zoom", 15)
	v.SetDefault("maps.single_result_zoom", 14)
	v.SetDefault("search.country", "")
	v.SetDefault("search.fields", []string{"name", "formatted_address", "geometry"})
	v.SetDefault("services.geocoding_base_url", "https://maps.googleapis.com/maps/api")
	v.SetDefault("services.places_base_url", "https://maps.googleapis.com/maps/api")
	v.SetDefault("services.identity_base_url", "http://localhost:8082")
	v.SetDefault("gcp.collection", "locations")
	v.SetDefault("log_level", "info")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: PLACEMAP_MAPS_CREDENTIAL → maps.credential
	v.SetEnvPrefix("PLACEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
// The map credential is deliberately not required: a missing credential
// starts the application in degraded mode instead of stopping it.
func (c *Config) Validate() error {
	var errs []string

	if c.Maps.DefaultLat < -90 || c.Maps.DefaultLat > 90 {
		errs = append(errs, fmt.Sprintf("maps.default_lat must be -90..90, got %f", c.Maps.DefaultLat))
	}
	if c.Maps.DefaultLng < -180 || c.Maps.DefaultLng > 180 {
		errs = append(errs, fmt.Sprintf("maps.default_lng must be -180..180, got %f", c.Maps.DefaultLng))
	}
	if c.Maps.DefaultZoom <= 0 {
		errs = append(errs, "maps.default_zoom must be positive")
	}
	if c.Maps.ViewZoom <= 0 {
		errs = append(errs, "maps.view_zoom must be positive")
	}
	if c.Maps.SingleResultZoom <= 0 {
		errs = append(errs, "maps.single_result_zoom must be positive")
	}
	if c.Services.GeocodingBaseURL == "" {
		errs = append(errs, "services.geocoding_base_url is required")
	}
	if c.Services.PlacesBaseURL == "" {
		errs = append(errs, "services.places_base_url is required")
	}
	if c.Services.IdentityBaseURL == "" {
		errs = append(errs, "services.identity_base_url is required")
	}
	if c.GCP.ProjectID == "" {
		errs = append(errs, "gcp.project_id is required")
	}
	if c.GCP.Collection == "" {
		errs = append(errs, "gcp.collection is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
