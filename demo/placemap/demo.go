// FILE: main.go
// This demo shows the basic, single-user saved-places flow against an
// in-memory store and a detached map surface.

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/pkg/dashboard"
	"github.com/illmade-knight/place-map/pkg/geo"
	"github.com/illmade-knight/place-map/pkg/locations"
	"github.com/illmade-knight/place-map/pkg/mapview"
)

func main() {
	log.Println("--- Starting Single-User Demo ---")
	logger := zerolog.New(os.Stdout).Level(zerolog.WarnLevel)

	// 1. Initialize the store, the service and the map surface
	remote := locations.NewInMemoryRemoteStore()
	service := locations.NewService(remote, clockwork.NewRealClock(), nil, logger)

	sdk, err := mapview.LoadSDK(mapview.SDKConfig{Credential: "demo-credential"}, logger)
	if err != nil {
		log.Fatalf("map provider failed to load: %v", err)
	}
	surface := mapview.NewSurface(sdk, mapview.Config{
		DefaultCenter:    geo.Point{Lat: 53.3498, Lng: -6.2603},
		DefaultZoom:      12,
		SingleResultZoom: 14,
	}, logger)
	_ = surface.Attach()

	dash := dashboard.New(service, surface, nil, clockwork.NewRealClock(), dashboard.Config{ViewZoom: 15}, logger)
	service.Changes().Subscribe(dash.Reconcile)

	ctx := context.Background()
	user := "sora"

	// 2. Save some places
	log.Println("\n--- Saving Places ---")
	pizza, _ := service.Create(ctx, user, locations.Draft{
		Name:    "4Star Pizza",
		Address: "Fairview Strand, Dublin",
		Lat:     53.3645,
		Lng:     -6.2330,
	})
	park, _ := service.Create(ctx, user, locations.Draft{
		Name:    "Fairview Park",
		Address: "Fairview, Dublin",
		Lat:     53.3670,
		Lng:     -6.2290,
		Notes:   "football on Saturdays",
	})
	log.Printf("✅ Saved %d places, %d markers on the map.", len(service.Snapshot()), surface.MarkerCount())
	log.Printf("   They are %.2f km apart.", geo.Haversine(pizza.Coords, park.Coords))

	// 3. Center on one place
	log.Println("\n--- Viewing a Place ---")
	if dash.View(pizza.ID) {
		center := surface.Center()
		fmt.Printf(" -> 📍 Centered on %s at (%.4f, %.4f), zoom %d\n", pizza.Name, center.Lat, center.Lng, surface.Zoom())
	}

	// 4. Delete it and watch the viewport refit over what remains
	log.Println("\n--- Deleting a Place ---")
	if err := dash.Delete(ctx, pizza.ID); err != nil {
		log.Fatalf("delete failed: %v", err)
	}
	center := surface.Center()
	fmt.Printf(" -> 🗑  %s removed, %d marker left, map refit to (%.4f, %.4f)\n",
		pizza.Name, surface.MarkerCount(), center.Lat, center.Lng)

	if remaining, _ := service.List(ctx, user); len(remaining) == 1 && remaining[0].ID == park.ID {
		log.Println("\n✅ Demo complete: store and map agree.")
	}
}
