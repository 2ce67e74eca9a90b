//go:build integration

package firestore_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/illmade-knight/go-test/emulators"
	fs "github.com/illmade-knight/place-map/internal/storage/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illmade-knight/place-map/pkg/geo"
	"github.com/illmade-knight/place-map/pkg/locations"
)

func setupLocationsTest(t *testing.T) (context.Context, *firestore.Client, *fs.LocationsStore) {
	t.Helper()
	ctx := context.Background()
	fsConn := emulators.SetupFirestoreEmulator(t, ctx, emulators.GetDefaultFirestoreConfig("test-project"))
	fsClient, err := firestore.NewClient(ctx, "test-project", fsConn.ClientOptions...)
	require.NoError(t, err)

	store := fs.NewLocationsStore(fsClient, "locations")
	require.NotNil(t, store)

	t.Cleanup(func() {
		fsClient.Close()
	})
	return ctx, fsClient, store
}

func TestLocationsStore(t *testing.T) {
	ctx, _, store := setupLocationsTest(t)
	ownerID := "user-123"
	now := time.Now().UTC().Truncate(time.Millisecond)

	// Arrange: Create some test locations
	home := locations.Location{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      "Home",
		Address:   "1 Main St",
		Coords:    geo.Point{Lat: 53.3498, Lng: -6.2603},
		CreatedAt: now,
		UpdatedAt: now,
	}
	office := locations.Location{
		ID:        uuid.New(),
		OwnerID:   "user-456",
		Name:      "Office",
		Coords:    geo.Point{Lat: 37.4220, Lng: -122.0841},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Act & Assert: Insert
	err := store.Insert(ctx, home)
	require.NoError(t, err)
	err = store.Insert(ctx, office)
	require.NoError(t, err)

	t.Run("ListByOwner", func(t *testing.T) {
		owned, err := store.ListByOwner(ctx, ownerID)
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, home.ID, owned[0].ID)
		assert.Equal(t, home.Coords, owned[0].Coords)
	})

	t.Run("Merge", func(t *testing.T) {
		err := store.Merge(ctx, home.ID, map[string]any{
			locations.FieldName:      "Home Sweet Home",
			locations.FieldUpdatedAt: now.Add(time.Minute),
		})
		require.NoError(t, err)

		owned, err := store.ListByOwner(ctx, ownerID)
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, "Home Sweet Home", owned[0].Name)
		// Untouched fields survive a merge.
		assert.Equal(t, home.Address, owned[0].Address)
	})

	t.Run("MergeMissing", func(t *testing.T) {
		err := store.Merge(ctx, uuid.New(), map[string]any{locations.FieldName: "Ghost"})
		require.ErrorIs(t, err, locations.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, home.ID))

		owned, err := store.ListByOwner(ctx, ownerID)
		require.NoError(t, err)
		assert.Empty(t, owned)

		// Deleting again is a no-op, not an error.
		require.NoError(t, store.Delete(ctx, home.ID))
	})
}
