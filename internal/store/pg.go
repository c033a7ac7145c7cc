package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/millionre/catalog-api/internal/store/schema"
)

// entityPtr constrains a schema pointer type to expose its opaque id.
type entityPtr[T any] interface {
	*T
	EntityID() uuid.UUID
}

// repository is the gorm-backed implementation of Repository[T]. The table
// binding comes from the schema type's TableName method; the opaque-id
// accessor from its EntityID method.
type repository[T any, PT entityPtr[T]] struct {
	db   *gorm.DB
	name string
}

func newRepository[T any, PT entityPtr[T]](db *gorm.DB, name string) repository[T, PT] {
	return repository[T, PT]{db: db, name: name}
}

// GetByID retrieves an entity by its opaque id. An id that does not parse
// as a native identifier means not-found, deliberately not an error.
func (r repository[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var entity T
	err = r.db.WithContext(ctx).Where("id = ?", oid).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", r.name, err)
	}

	return &entity, nil
}

// GetAll performs an unfiltered scan over the table.
func (r repository[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.name, err)
	}
	return entities, nil
}

// Find retrieves entities matching the given condition.
func (r repository[T, PT]) Find(ctx context.Context, cond string, args ...any) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Where(cond, args...).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", r.name, err)
	}
	return entities, nil
}

// Add inserts the entity and returns it as stored, including the
// store-assigned id.
func (r repository[T, PT]) Add(ctx context.Context, entity *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", r.name, err)
	}
	return entity, nil
}

// Update replaces the stored row keyed by the entity's opaque id. The
// caller must hold a persisted entity; a zero id is the single
// identifier-parsing case surfaced as a fault.
func (r repository[T, PT]) Update(ctx context.Context, entity *T) error {
	if entity == nil || PT(entity).EntityID() == uuid.Nil {
		return ErrInvalidEntityID
	}

	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("failed to update %s: %w", r.name, err)
	}
	return nil
}

// Delete physically removes the row keyed by the opaque id. Malformed ids
// no-op, making the operation idempotent on garbage input.
func (r repository[T, PT]) Delete(ctx context.Context, id string) error {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}

	var entity T
	if err := r.db.WithContext(ctx).Where("id = ?", oid).Delete(&entity).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.name, err)
	}
	return nil
}

// Exists reports whether a row with the opaque id exists.
func (r repository[T, PT]) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	var count int64
	var entity T
	if err := r.db.WithContext(ctx).Model(&entity).Where("id = ?", oid).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", r.name, err)
	}
	return count > 0, nil
}

// Count returns the total number of rows in the table.
func (r repository[T, PT]) Count(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	if err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.name, err)
	}
	return count, nil
}

// CountWhere returns the number of rows matching the condition.
func (r repository[T, PT]) CountWhere(ctx context.Context, cond string, args ...any) (int64, error) {
	var count int64
	var entity T
	if err := r.db.WithContext(ctx).Model(&entity).Where(cond, args...).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.name, err)
	}
	return count, nil
}

type pgStore struct {
	db         *gorm.DB
	owners     repository[schema.Owner, *schema.Owner]
	properties repository[schema.Property, *schema.Property]
	images     repository[schema.PropertyImage, *schema.PropertyImage]
	traces     repository[schema.PropertyTrace, *schema.PropertyTrace]
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{
		db:         db,
		owners:     newRepository[schema.Owner](db, "owner"),
		properties: newRepository[schema.Property](db, "property"),
		images:     newRepository[schema.PropertyImage](db, "property image"),
		traces:     newRepository[schema.PropertyTrace](db, "property trace"),
	}
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Owner{},
		&schema.Property{},
		&schema.PropertyImage{},
		&schema.PropertyTrace{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a
// GORM database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

func (s *pgStore) Properties() Repository[schema.Property] {
	return s.properties
}

func (s *pgStore) Owners() Repository[schema.Owner] {
	return s.owners
}

func (s *pgStore) Images() Repository[schema.PropertyImage] {
	return s.images
}

func (s *pgStore) Traces() Repository[schema.PropertyTrace] {
	return s.traces
}

// GetPropertyByKey retrieves a property by its business key
func (s *pgStore) GetPropertyByKey(ctx context.Context, propertyKey string) (*schema.Property, error) {
	var property schema.Property
	err := s.db.WithContext(ctx).Where("property_key = ?", propertyKey).First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return &property, nil
}

// GetPropertiesByOwner retrieves the active properties referencing the
// given owner key
func (s *pgStore) GetPropertiesByOwner(ctx context.Context, ownerKey string) ([]schema.Property, error) {
	var properties []schema.Property
	err := s.db.WithContext(ctx).
		Where("owner_key = ? AND is_active = ?", ownerKey, true).
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get properties by owner: %w", err)
	}

	return properties, nil
}

// GetPropertiesByFilter retrieves active properties matching the filter.
// All criteria are conjunctive; absent criteria impose no constraint.
func (s *pgStore) GetPropertiesByFilter(ctx context.Context, filter PropertyFilter) ([]schema.Property, error) {
	query := s.db.WithContext(ctx).Where("is_active = ?", true)

	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Address != "" {
		query = query.Where("address ILIKE ?", "%"+filter.Address+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var properties []schema.Property
	if err := query.Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to get properties by filter: %w", err)
	}

	return properties, nil
}

// GetPropertyComplete retrieves a property by opaque id, falling back to
// the business key, and attaches its images, traces and owner. Costs three
// extra round trips per call; a dangling owner reference attaches nil.
func (s *pgStore) GetPropertyComplete(ctx context.Context, id string) (*schema.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		property, err = s.GetPropertyByKey(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	if property == nil {
		return nil, nil
	}

	images, err := s.GetImagesByProperty(ctx, property.PropertyKey)
	if err != nil {
		return nil, err
	}

	traces, err := s.GetTracesByProperty(ctx, property.PropertyKey)
	if err != nil {
		return nil, err
	}

	owner, err := s.GetOwnerByKey(ctx, property.OwnerKey)
	if err != nil {
		return nil, err
	}

	property.Images = images
	property.Traces = traces
	property.Owner = owner

	return property, nil
}

// GetOwnerByKey retrieves an owner by its business key
func (s *pgStore) GetOwnerByKey(ctx context.Context, ownerKey string) (*schema.Owner, error) {
	var owner schema.Owner
	err := s.db.WithContext(ctx).Where("owner_key = ?", ownerKey).First(&owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}

	return &owner, nil
}

// GetOwnersByName retrieves active owners whose name contains the given
// substring, case-insensitively
func (s *pgStore) GetOwnersByName(ctx context.Context, name string) ([]schema.Owner, error) {
	var owners []schema.Owner
	err := s.db.WithContext(ctx).
		Where("name ILIKE ? AND is_active = ?", "%"+name+"%", true).
		Find(&owners).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get owners by name: %w", err)
	}

	return owners, nil
}

// GetImagesByProperty retrieves the enabled images of a property in
// insertion order. The first returned image is the representative one.
func (s *pgStore) GetImagesByProperty(ctx context.Context, propertyKey string) ([]schema.PropertyImage, error) {
	var images []schema.PropertyImage
	err := s.db.WithContext(ctx).
		Where("property_key = ? AND enabled = ?", propertyKey, true).
		Order("created_at, image_key").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get property images: %w", err)
	}

	return images, nil
}

// GetMainImageByProperty retrieves the first enabled image of a property,
// or nil when none exists
func (s *pgStore) GetMainImageByProperty(ctx context.Context, propertyKey string) (*schema.PropertyImage, error) {
	var image schema.PropertyImage
	err := s.db.WithContext(ctx).
		Where("property_key = ? AND enabled = ?", propertyKey, true).
		Order("created_at, image_key").
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get main image: %w", err)
	}

	return &image, nil
}

// GetTracesByProperty retrieves a property's sale traces, most recent sale
// first
func (s *pgStore) GetTracesByProperty(ctx context.Context, propertyKey string) ([]schema.PropertyTrace, error) {
	var traces []schema.PropertyTrace
	err := s.db.WithContext(ctx).
		Where("property_key = ?", propertyKey).
		Order("date_sale DESC").
		Find(&traces).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get property traces: %w", err)
	}

	return traces, nil
}

// GetTracesByDateRange retrieves traces with a sale date inside the
// inclusive range, most recent sale first
func (s *pgStore) GetTracesByDateRange(ctx context.Context, start, end time.Time) ([]schema.PropertyTrace, error) {
	var traces []schema.PropertyTrace
	err := s.db.WithContext(ctx).
		Where("date_sale >= ? AND date_sale <= ?", start, end).
		Order("date_sale DESC").
		Find(&traces).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get traces by date range: %w", err)
	}

	return traces, nil
}
