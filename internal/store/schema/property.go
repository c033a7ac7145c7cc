package schema

import (
	"time"

	"github.com/google/uuid"
)

// Property represents the properties table - the primary catalog entity.
type Property struct {
	// ID is the store-generated opaque identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// PropertyKey is the human-assigned business identifier (e.g. "PROP001")
	PropertyKey string `gorm:"column:property_key;not null;uniqueIndex;type:text"`
	// Name is the property's display name
	Name string `gorm:"column:name;not null;type:text;index:idx_properties_name"`
	// Address is a free-text address
	Address string `gorm:"column:address;not null;type:text"`
	// Price is the listing price; currency is implicit
	Price float64 `gorm:"column:price;not null;index:idx_properties_price"`
	// CodeInternal is an internal bookkeeping code
	CodeInternal string `gorm:"column:code_internal;not null;type:text"`
	// Year is the construction/listing year
	Year int `gorm:"column:year;not null"`
	// OwnerKey references the owning Owner by business key. The store does
	// not enforce this reference; a dangling key surfaces as a nil Owner at
	// read time.
	OwnerKey string `gorm:"column:owner_key;not null;type:text;index:idx_properties_owner_key"`
	// IsActive is the soft-delete flag
	IsActive bool `gorm:"column:is_active;not null;default:true"`
	// CreatedAt is set once when the record is created
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	// UpdatedAt is refreshed on every mutation, including soft delete
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`

	// Attachments filled by the complete fetch, never persisted
	Owner  *Owner          `gorm:"-"`
	Images []PropertyImage `gorm:"-"`
	Traces []PropertyTrace `gorm:"-"`
}

// TableName specifies the table name for the Property model
func (Property) TableName() string {
	return "properties"
}

// EntityID returns the opaque identifier
func (p *Property) EntityID() uuid.UUID {
	return p.ID
}
