package schema

import (
	"time"

	"github.com/google/uuid"
)

// Owner represents the owners table. An owner is referenced by properties
// through its business key (OwnerKey), never through the database id.
type Owner struct {
	// ID is the store-generated opaque identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// OwnerKey is the human-assigned business identifier (e.g. "OWN001")
	OwnerKey string `gorm:"column:owner_key;not null;uniqueIndex;type:text"`
	// Name is the owner's display name
	Name string `gorm:"column:name;not null;type:text"`
	// Address is a free-text postal address
	Address string `gorm:"column:address;not null;type:text"`
	// Photo is an opaque URL reference to the owner's photo
	Photo string `gorm:"column:photo;not null;type:text"`
	// Birthday is the owner's birth date
	Birthday time.Time `gorm:"column:birthday;not null"`
	// IsActive is the soft-delete flag
	IsActive bool `gorm:"column:is_active;not null;default:true"`
	// CreatedAt is set once when the record is created
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	// UpdatedAt is refreshed on every mutation, including soft delete
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for the Owner model
func (Owner) TableName() string {
	return "owners"
}

// EntityID returns the opaque identifier
func (o *Owner) EntityID() uuid.UUID {
	return o.ID
}
