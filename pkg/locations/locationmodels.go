// FILE: locations/models.go

package locations

import (
	"time"

	"github.com/google/uuid"

	"github.com/illmade-knight/place-map/pkg/geo"
)

// Location represents a named geographic place saved by a user.
// Coordinates are stored as plain numerics only; the store never
// accepts a provider wrapper shape.
type Location struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Coords      geo.Point `json:"coords"`
	Description string    `json:"description,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Draft is the user-supplied input for a new Location. The id, owner and
// timestamps are assigned by the service on creation.
type Draft struct {
	Name        string  `validate:"required"`
	Address     string  `validate:"-"`
	Lat         float64 `validate:"gte=-90,lte=90"`
	Lng         float64 `validate:"gte=-180,lte=180"`
	Description string  `validate:"-"`
	Notes       string  `validate:"-"`
}

// Update carries the fields of a partial update. Nil fields are left
// untouched by the merge.
type Update struct {
	Name        *string
	Address     *string
	Lat         *float64
	Lng         *float64
	Description *string
	Notes       *string
}

// Canonical field keys shared by every RemoteStore implementation. The
// Firestore document tags use the same names, so a merge built here maps
// directly onto a document merge.
const (
	FieldName        = "name"
	FieldAddress     = "address"
	FieldLat         = "lat"
	FieldLng         = "lng"
	FieldDescription = "description"
	FieldNotes       = "notes"
	FieldUpdatedAt   = "updatedAt"
)

// fields flattens the update into the canonical key space.
func (u Update) fields() map[string]any {
	out := make(map[string]any)
	if u.Name != nil {
		out[FieldName] = *u.Name
	}
	if u.Address != nil {
		out[FieldAddress] = *u.Address
	}
	if u.Lat != nil {
		out[FieldLat] = *u.Lat
	}
	if u.Lng != nil {
		out[FieldLng] = *u.Lng
	}
	if u.Description != nil {
		out[FieldDescription] = *u.Description
	}
	if u.Notes != nil {
		out[FieldNotes] = *u.Notes
	}
	return out
}

// Merge applies a canonical field map to a Location copy. RemoteStore
// implementations and the service use the same merge so the snapshot and
// the document store cannot drift on a partial update.
func Merge(loc Location, fields map[string]any) Location {
	for key, value := range fields {
		switch key {
		case FieldName:
			loc.Name = value.(string)
		case FieldAddress:
			loc.Address = value.(string)
		case FieldLat:
			loc.Coords.Lat = value.(float64)
		case FieldLng:
			loc.Coords.Lng = value.(float64)
		case FieldDescription:
			loc.Description = value.(string)
		case FieldNotes:
			loc.Notes = value.(string)
		case FieldUpdatedAt:
			loc.UpdatedAt = value.(time.Time)
		}
	}
	return loc
}
