// FILE: locations/errors.go

package locations

import "errors"

var (
	// ErrValidation marks bad user input: an empty name, or coordinates
	// that are missing or out of range.
	ErrValidation = errors.New("locations: invalid location data")

	// ErrNotFound marks an id unknown to the store.
	ErrNotFound = errors.New("locations: location not found")

	// ErrAuthRequired marks an operation attempted without an owner context.
	ErrAuthRequired = errors.New("locations: no active session")

	// ErrStoreUnavailable marks a transport failure talking to the
	// remote document store.
	ErrStoreUnavailable = errors.New("locations: store unavailable")
)
