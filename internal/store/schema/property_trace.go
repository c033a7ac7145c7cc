package schema

import (
	"time"

	"github.com/google/uuid"
)

// PropertyTrace represents the property_traces table - one row per recorded
// sale of a property.
type PropertyTrace struct {
	// ID is the store-generated opaque identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// TraceKey is the human-assigned business identifier
	TraceKey string `gorm:"column:trace_key;not null;uniqueIndex;type:text"`
	// PropertyKey references the parent Property by business key
	PropertyKey string `gorm:"column:property_key;not null;type:text;index:idx_property_traces_property_key"`
	// DateSale is the date the sale was recorded
	DateSale time.Time `gorm:"column:date_sale;not null"`
	// Name labels the sale event
	Name string `gorm:"column:name;not null;type:text"`
	// Value is the sale amount
	Value float64 `gorm:"column:value;not null"`
	// Tax is the tax amount paid on the sale
	Tax float64 `gorm:"column:tax;not null"`
	// IsActive is the soft-delete flag
	IsActive bool `gorm:"column:is_active;not null;default:true"`
	// CreatedAt is set once when the record is created
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	// UpdatedAt is refreshed on every mutation
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for the PropertyTrace model
func (PropertyTrace) TableName() string {
	return "property_traces"
}

// EntityID returns the opaque identifier
func (t *PropertyTrace) EntityID() uuid.UUID {
	return t.ID
}
