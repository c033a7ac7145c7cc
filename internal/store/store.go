package store

import (
	"context"
	"errors"
	"time"

	"github.com/millionre/catalog-api/internal/store/schema"
)

// ErrInvalidEntityID is returned by Repository.Update when the entity's
// opaque id is not a valid store identifier. Update is the only operation
// that treats a malformed id as a fault; every read/delete path degrades to
// not-found / false / no-op instead.
var ErrInvalidEntityID = errors.New("invalid entity id")

// Repository is the uniform CRUD capability set over a single entity type.
// Identifier-shaped user input is safe by construction: a string that does
// not parse as an opaque id yields an empty result, never an error.
type Repository[T any] interface {
	// GetByID retrieves an entity by its opaque id. Returns nil (no error)
	// when the id is malformed or no row matches.
	GetByID(ctx context.Context, id string) (*T, error)
	// GetAll performs an unfiltered scan. Active-flag filtering is the
	// responsibility of the specialized query methods, not this layer.
	GetAll(ctx context.Context) ([]T, error)
	// Find retrieves entities matching an arbitrary condition
	Find(ctx context.Context, cond string, args ...any) ([]T, error)
	// Add inserts the entity and returns it as stored
	Add(ctx context.Context, entity *T) (*T, error)
	// Update replaces the stored row keyed by the entity's opaque id.
	// Returns ErrInvalidEntityID when the entity has no valid id.
	Update(ctx context.Context, entity *T) error
	// Delete physically removes the row keyed by the opaque id. No-op on a
	// malformed id.
	Delete(ctx context.Context, id string) error
	// Exists reports whether a row with the opaque id exists. False (no
	// error) on a malformed id.
	Exists(ctx context.Context, id string) (bool, error)
	// Count returns the total number of rows
	Count(ctx context.Context) (int64, error)
	// CountWhere returns the number of rows matching a condition
	CountWhere(ctx context.Context, cond string, args ...any) (int64, error)
}

// PropertyFilter holds the optional criteria for the property list query.
// Name and Address are unanchored case-insensitive substring matches;
// MinPrice/MaxPrice are inclusive bounds. Zero-valued criteria impose no
// constraint. The query always restricts to active properties.
type PropertyFilter struct {
	Name     string
	Address  string
	MinPrice *float64
	MaxPrice *float64
}

// Store defines the interface for database operations
type Store interface {
	// Properties exposes the generic CRUD operations for properties
	Properties() Repository[schema.Property]
	// Owners exposes the generic CRUD operations for owners
	Owners() Repository[schema.Owner]
	// Images exposes the generic CRUD operations for property images
	Images() Repository[schema.PropertyImage]
	// Traces exposes the generic CRUD operations for property traces
	Traces() Repository[schema.PropertyTrace]

	// GetPropertyByKey retrieves a property by its business key
	GetPropertyByKey(ctx context.Context, propertyKey string) (*schema.Property, error)
	// GetPropertiesByOwner retrieves the active properties referencing the
	// given owner key
	GetPropertiesByOwner(ctx context.Context, ownerKey string) ([]schema.Property, error)
	// GetPropertiesByFilter retrieves active properties matching the filter
	GetPropertiesByFilter(ctx context.Context, filter PropertyFilter) ([]schema.Property, error)
	// GetPropertyComplete retrieves a property by opaque id, falling back
	// to the business key, and attaches its images, traces and owner. A
	// dangling owner reference attaches nil, never an error.
	GetPropertyComplete(ctx context.Context, id string) (*schema.Property, error)

	// GetOwnerByKey retrieves an owner by its business key
	GetOwnerByKey(ctx context.Context, ownerKey string) (*schema.Owner, error)
	// GetOwnersByName retrieves active owners whose name contains the given
	// substring, case-insensitively
	GetOwnersByName(ctx context.Context, name string) ([]schema.Owner, error)

	// GetImagesByProperty retrieves the enabled images of a property in
	// insertion order
	GetImagesByProperty(ctx context.Context, propertyKey string) ([]schema.PropertyImage, error)
	// GetMainImageByProperty retrieves the first enabled image of a
	// property, or nil when none exists
	GetMainImageByProperty(ctx context.Context, propertyKey string) (*schema.PropertyImage, error)

	// GetTracesByProperty retrieves a property's sale traces, most recent
	// sale first
	GetTracesByProperty(ctx context.Context, propertyKey string) ([]schema.PropertyTrace, error)
	// GetTracesByDateRange retrieves traces with a sale date inside the
	// inclusive range, most recent sale first
	GetTracesByDateRange(ctx context.Context, start, end time.Time) ([]schema.PropertyTrace, error)
}
