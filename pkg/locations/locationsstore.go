// FILE: locations/store.go

package locations

import (
	"context"

	"github.com/google/uuid"
)

// RemoteStore is the contract with the remote document store: a per-owner
// collection of Location records. Persistence and replication guarantees
// live behind this interface; the service above it only assumes the four
// operations below.
type RemoteStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Location, error)
	Insert(ctx context.Context, loc Location) error
	Merge(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}
