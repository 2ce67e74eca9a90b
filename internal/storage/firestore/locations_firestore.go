// Package firestore provides persistent storage implementations using Google Cloud Firestore.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/illmade-knight/place-map/pkg/geo"
	"github.com/illmade-knight/place-map/pkg/locations"
)

// locationDocument is the private struct used for Firestore marshalling. This keeps
// the public domain model in `pkg/locations` clean from persistence-specific tags.
type locationDocument struct {
	OwnerID     string    `firestore:"ownerId"`
	Name        string    `firestore:"name"`
	Address     string    `firestore:"address"`
	Lat         float64   `firestore:"lat"`
	Lng         float64   `firestore:"lng"`
	Description string    `firestore:"description"`
	Notes       string    `firestore:"notes"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

// LocationsStore is a concrete implementation of the locations.RemoteStore
// interface using Firestore.
type LocationsStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

// NewLocationsStore creates a new Firestore-backed store for locations.
func NewLocationsStore(client *firestore.Client, collection string) *LocationsStore {
	return &LocationsStore{
		client:     client,
		collection: client.Collection(collection),
	}
}

func toLocationDocument(loc locations.Location) locationDocument {
	return locationDocument{
		OwnerID:     loc.OwnerID,
		Name:        loc.Name,
		Address:     loc.Address,
		Lat:         loc.Coords.Lat,
		Lng:         loc.Coords.Lng,
		Description: loc.Description,
		Notes:       loc.Notes,
		CreatedAt:   loc.CreatedAt,
		UpdatedAt:   loc.UpdatedAt,
	}
}

func toLocation(docID uuid.UUID, doc locationDocument) locations.Location {
	return locations.Location{
		ID:          docID,
		OwnerID:     doc.OwnerID,
		Name:        doc.Name,
		Address:     doc.Address,
		Coords:      geo.Point{Lat: doc.Lat, Lng: doc.Lng},
		Description: doc.Description,
		Notes:       doc.Notes,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

// Insert saves a new location to the store.
func (s *LocationsStore) Insert(ctx context.Context, loc locations.Location) error {
	doc := s.collection.Doc(loc.ID.String())
	if _, err := doc.Set(ctx, toLocationDocument(loc)); err != nil {
		return fmt.Errorf("%w: %v", locations.ErrStoreUnavailable, err)
	}
	return nil
}

// Merge applies a partial field update to an existing document. The field
// keys are the canonical names shared with the domain model, which match
// the firestore tags on locationDocument.
func (s *LocationsStore) Merge(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	doc := s.collection.Doc(id.String())
	if _, err := doc.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%w: location %s", locations.ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", locations.ErrStoreUnavailable, err)
	}
	if _, err := doc.Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("%w: %v", locations.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes a location. Deleting an absent document is not an error.
func (s *LocationsStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.collection.Doc(id.String()).Delete(ctx); err != nil {
		return fmt.Errorf("%w: %v", locations.ErrStoreUnavailable, err)
	}
	return nil
}

// ListByOwner retrieves all locations belonging to one owner.
func (s *LocationsStore) ListByOwner(ctx context.Context, ownerID string) ([]locations.Location, error) {
	iter := s.collection.Where("ownerId", "==", ownerID).Documents(ctx)
	return processLocationIterator(iter)
}

// processLocationIterator is a helper to drain results from a Firestore iterator.
func processLocationIterator(iter *firestore.DocumentIterator) ([]locations.Location, error) {
	var results []locations.Location
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", locations.ErrStoreUnavailable, err)
		}

		var ld locationDocument
		if err := doc.DataTo(&ld); err != nil {
			return nil, err
		}
		docID, err := uuid.Parse(doc.Ref.ID)
		if err != nil {
			return nil, err // Should not happen if we control IDs
		}
		results = append(results, toLocation(docID, ld))
	}
	return results, nil
}
