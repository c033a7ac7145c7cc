package schema

import (
	"time"

	"github.com/google/uuid"
)

// PropertyImage represents the property_images table. The file reference is
// an opaque URL; image bytes are never stored here.
type PropertyImage struct {
	// ID is the store-generated opaque identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// ImageKey is the human-assigned business identifier
	ImageKey string `gorm:"column:image_key;not null;uniqueIndex;type:text"`
	// PropertyKey references the parent Property by business key
	PropertyKey string `gorm:"column:property_key;not null;type:text;index:idx_property_images_property_key"`
	// File is the opaque URL of the image
	File string `gorm:"column:file;not null;type:text"`
	// Enabled marks the image as eligible to be the representative image
	Enabled bool `gorm:"column:enabled;not null;default:true"`
	// IsActive is the soft-delete flag
	IsActive bool `gorm:"column:is_active;not null;default:true"`
	// CreatedAt is set once when the record is created
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	// UpdatedAt is refreshed on every mutation
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for the PropertyImage model
func (PropertyImage) TableName() string {
	return "property_images"
}

// EntityID returns the opaque identifier
func (i *PropertyImage) EntityID() uuid.UUID {
	return i.ID
}
