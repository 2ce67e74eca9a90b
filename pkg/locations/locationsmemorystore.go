// FILE: locations/inmem_store.go

package locations

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRemoteStore is a thread-safe, in-memory implementation of the
// RemoteStore interface, used in tests and offline composition.
type InMemoryRemoteStore struct {
	sync.RWMutex
	locations map[uuid.UUID]Location
}

// NewInMemoryRemoteStore creates a new in-memory store.
func NewInMemoryRemoteStore() *InMemoryRemoteStore {
	return &InMemoryRemoteStore{
		locations: make(map[uuid.UUID]Location),
	}
}

// ListByOwner returns every location owned by ownerID.
func (s *InMemoryRemoteStore) ListByOwner(ctx context.Context, ownerID string) ([]Location, error) {
	s.RLock()
	defer s.RUnlock()

	results := make([]Location, 0, len(s.locations))
	for _, loc := range s.locations {
		if loc.OwnerID == ownerID {
			results = append(results, loc)
		}
	}
	return results, nil
}

// Insert saves a new location.
func (s *InMemoryRemoteStore) Insert(ctx context.Context, loc Location) error {
	s.Lock()
	defer s.Unlock()
	s.locations[loc.ID] = loc
	return nil
}

// Merge applies a partial field update to an existing location.
func (s *InMemoryRemoteStore) Merge(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	s.Lock()
	defer s.Unlock()

	loc, ok := s.locations[id]
	if !ok {
		return fmt.Errorf("location with ID %s not found", id)
	}
	s.locations[id] = Merge(loc, fields)
	return nil
}

// Delete removes a location. Deleting an absent id is not an error.
func (s *InMemoryRemoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.Lock()
	defer s.Unlock()
	delete(s.locations, id)
	return nil
}
