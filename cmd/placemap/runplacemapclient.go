package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/app"
	"github.com/illmade-knight/place-map/internal/clients"
	"github.com/illmade-knight/place-map/internal/config"
	"github.com/illmade-knight/place-map/internal/observability"
	firestorestorage "github.com/illmade-knight/place-map/internal/storage/firestore"
	"github.com/illmade-knight/place-map/pkg/dashboard"
	"github.com/illmade-knight/place-map/pkg/geo"
	"github.com/illmade-knight/place-map/pkg/identity"
	"github.com/illmade-knight/place-map/pkg/locations"
	"github.com/illmade-knight/place-map/pkg/mapview"
	"github.com/illmade-knight/place-map/pkg/search"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	// 2. Initialize External Clients (e.g., Firestore)
	fsClient, err := firestore.NewClient(ctx, cfg.GCP.ProjectID)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Firestore client")
	}
	defer fsClient.Close()

	// 3. Instantiate Persistent Storage Adapters and Instrumentation
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	remoteStore := firestorestorage.NewLocationsStore(fsClient, cfg.GCP.Collection)
	logger.Info().Msg("Firestore storage adapter initialized")

	// 4. Instantiate Domain Services
	clock := clockwork.NewRealClock()
	locationSvc := locations.NewService(remoteStore, clock, metrics, logger)
	logger.Info().Msg("Domain services initialized")

	// 5. Instantiate Networking Clients
	geocoder := clients.NewGeocodingClient(cfg.Services.GeocodingBaseURL, cfg.Maps.Credential, metrics, logger)
	placesClient := clients.NewPlacesClient(cfg.Services.PlacesBaseURL, cfg.Maps.Credential, metrics, logger)
	identityClient := clients.NewIdentityClient(cfg.Services.IdentityBaseURL, logger)
	session := identity.NewSession(identityClient, logger)
	logger.Info().Msg("Networking clients initialized")

	// 6. Instantiate the Map Surface. A failed provider load degrades the
	// application instead of stopping it; the surface stays unattached.
	sdk, err := mapview.LoadSDK(mapview.SDKConfig{
		Credential: cfg.Maps.Credential,
		MapID:      cfg.Maps.MapID,
	}, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Map provider unavailable, running degraded")
	}
	surface := mapview.NewSurface(sdk, mapview.Config{
		DefaultCenter:    geo.Point{Lat: cfg.Maps.DefaultLat, Lng: cfg.Maps.DefaultLng},
		DefaultZoom:      cfg.Maps.DefaultZoom,
		SingleResultZoom: cfg.Maps.SingleResultZoom,
	}, logger)

	// 7. Instantiate the Search Widget and Dashboard
	searchWidget := search.NewWidget(placesClient, cfg.Search.Fields, logger)
	dash := dashboard.New(locationSvc, surface, geocoder, clock, dashboard.Config{
		ViewZoom: cfg.Maps.ViewZoom,
	}, logger)

	// 8. Instantiate the Main Application Orchestrator and Start
	application := app.New(session, locationSvc, surface, searchWidget, dash, metrics, logger)
	if err := application.Start(ctx, search.Restrictions{Country: cfg.Search.Country}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start application")
	}
	defer application.Stop()

	// 9. Expose the metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(":9090", mux); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	logger.Info().Msg("Place-map client initialized. Waiting for shutdown signal...")
	<-ctx.Done()
	logger.Info().Msg("Shutdown signal received. Exiting.")
}
