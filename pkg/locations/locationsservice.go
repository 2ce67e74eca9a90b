// FILE: locations/service.go

package locations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/internal/observability"
	"github.com/illmade-knight/place-map/pkg/events"
	"github.com/illmade-knight/place-map/pkg/geo"
)

// Service is the authoritative client-side cache of a user's locations,
// kept in sync with the remote document store. A List call replaces the
// in-memory snapshot wholesale; mutations update the snapshot only after
// the remote call succeeds, so a failed call leaves nothing to roll back.
//
// Overlapping calls are not serialized: if two responses arrive out of
// order, the snapshot reflects whichever arrived last. This is an
// accepted race, not a guarded one.
type Service struct {
	remote   RemoteStore
	clock    clockwork.Clock
	validate *validator.Validate
	metrics  *observability.Metrics
	logger   zerolog.Logger

	mu       sync.RWMutex
	snapshot map[uuid.UUID]Location

	changes *events.Emitter[[]Location]
}

// NewService creates the location service over a remote store.
// Metrics may be nil when instrumentation is not wired.
func NewService(remote RemoteStore, clock clockwork.Clock, metrics *observability.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		remote:   remote,
		clock:    clock,
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger.With().Str("component", "locations").Logger(),
		snapshot: make(map[uuid.UUID]Location),
		changes:  events.NewEmitter[[]Location](),
	}
}

// Changes emits the full location list after every successful refresh or
// mutation. The dashboard reconciles its markers from these events.
func (s *Service) Changes() *events.Emitter[[]Location] {
	return s.changes
}

// List fetches the full set of locations for ownerID from the remote
// store and makes it the new authoritative snapshot.
func (s *Service) List(ctx context.Context, ownerID string) ([]Location, error) {
	if ownerID == "" {
		return nil, ErrAuthRequired
	}

	remoteList, err := s.remote.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	s.snapshot = make(map[uuid.UUID]Location, len(remoteList))
	for _, loc := range remoteList {
		s.snapshot[loc.ID] = loc
	}
	list := s.sortedLocked()
	s.mu.Unlock()

	s.logger.Debug().Str("owner_id", ownerID).Int("count", len(list)).Msg("refreshed location snapshot")
	s.changes.Publish(list)
	return list, nil
}

// Create validates the draft, assigns an id and timestamps, and persists
// the new location. The snapshot is updated only after the remote insert
// succeeds.
func (s *Service) Create(ctx context.Context, ownerID string, draft Draft) (Location, error) {
	if ownerID == "" {
		return Location{}, ErrAuthRequired
	}
	if err := s.validate.Struct(draft); err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !geo.Valid(draft.Lat, draft.Lng) {
		return Location{}, fmt.Errorf("%w: coordinates (%v, %v) out of range", ErrValidation, draft.Lat, draft.Lng)
	}

	now := s.clock.Now()
	loc := Location{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        draft.Name,
		Address:     draft.Address,
		Coords:      geo.Point{Lat: draft.Lat, Lng: draft.Lng},
		Description: draft.Description,
		Notes:       draft.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.remote.Insert(ctx, loc); err != nil {
		s.count("create", err)
		return Location{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.count("create", nil)

	s.mu.Lock()
	s.snapshot[loc.ID] = loc
	list := s.sortedLocked()
	s.mu.Unlock()

	s.logger.Info().Stringer("location_id", loc.ID).Str("name", loc.Name).Msg("location created")
	s.changes.Publish(list)
	return loc, nil
}

// Update merges the partial fields into the existing record and refreshes
// its updatedAt stamp.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update Update) (Location, error) {
	s.mu.RLock()
	current, ok := s.snapshot[id]
	s.mu.RUnlock()
	if !ok {
		return Location{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	fields := update.fields()
	fields[FieldUpdatedAt] = s.clock.Now()

	merged := Merge(current, fields)
	if merged.Name == "" {
		return Location{}, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if !merged.Coords.Valid() {
		return Location{}, fmt.Errorf("%w: coordinates (%v, %v) out of range", ErrValidation, merged.Coords.Lat, merged.Coords.Lng)
	}

	if err := s.remote.Merge(ctx, id, fields); err != nil {
		s.count("update", err)
		if errors.Is(err, ErrNotFound) {
			return Location{}, err
		}
		return Location{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.count("update", nil)

	// Last response wins: the snapshot entry is re-read and re-merged so a
	// concurrent update that landed first is not silently resurrected.
	s.mu.Lock()
	if latest, still := s.snapshot[id]; still {
		merged = Merge(latest, fields)
		s.snapshot[id] = merged
	}
	list := s.sortedLocked()
	s.mu.Unlock()

	s.logger.Info().Stringer("location_id", id).Msg("location updated")
	s.changes.Publish(list)
	return merged, nil
}

// Delete removes a location. Deleting an id that is already gone is not
// an error at this layer; absence is success.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		s.count("delete", err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.count("delete", nil)

	s.mu.Lock()
	delete(s.snapshot, id)
	list := s.sortedLocked()
	s.mu.Unlock()

	s.logger.Info().Stringer("location_id", id).Msg("location deleted")
	s.changes.Publish(list)
	return nil
}

// Get returns a location from the current snapshot.
func (s *Service) Get(id uuid.UUID) (Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.snapshot[id]
	return loc, ok
}

// Snapshot returns a copy of the current in-memory list.
func (s *Service) Snapshot() []Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *Service) count(operation string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := observability.OutcomeOK
	if err != nil {
		outcome = observability.OutcomeError
	}
	s.metrics.StoreMutations.WithLabelValues(operation, outcome).Inc()
}

// sortedLocked builds a stable list from the snapshot. Callers hold s.mu.
func (s *Service) sortedLocked() []Location {
	list := make([]Location, 0, len(s.snapshot))
	for _, loc := range s.snapshot {
		list = append(list, loc)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID.String() < list[j].ID.String()
	})
	return list
}
