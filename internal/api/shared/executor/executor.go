package executor

import (
	"context"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/millionre/catalog-api/internal/adapter"
	"github.com/millionre/catalog-api/internal/api/shared/dto"
	apierrors "github.com/millionre/catalog-api/internal/api/shared/errors"
	"github.com/millionre/catalog-api/internal/logger"
	"github.com/millionre/catalog-api/internal/store"
	"github.com/millionre/catalog-api/internal/store/schema"
)

// Executor is the interface for the API executor
type Executor interface {
	// ListProperties retrieves the requested page of active properties
	// matching the filter, hydrated into list items
	ListProperties(ctx context.Context, filter store.PropertyFilter, page, pageSize int) ([]dto.PropertyListItem, error)

	// GetPropertyByID retrieves a property's base record without images,
	// traces or owner. Returns nil when no property matches.
	GetPropertyByID(ctx context.Context, id string) (*dto.PropertyDetail, error)

	// GetPropertyDetail retrieves a fully hydrated property. Returns nil
	// when no property matches.
	GetPropertyDetail(ctx context.Context, id string) (*dto.PropertyDetail, error)

	// ListPropertiesByOwner retrieves all active properties of an owner as
	// list items
	ListPropertiesByOwner(ctx context.Context, ownerKey string) ([]dto.PropertyListItem, error)

	// CreateProperty persists a new property and returns its detail view
	CreateProperty(ctx context.Context, input CreatePropertyInput) (*dto.PropertyDetail, error)

	// UpdateProperty overwrites a property's mutable fields. Returns nil
	// when no property matches.
	UpdateProperty(ctx context.Context, id string, input UpdatePropertyInput) (*dto.PropertyDetail, error)

	// DeleteProperty soft-deletes a property. Returns false when no
	// property matches.
	DeleteProperty(ctx context.Context, id string) (bool, error)

	// AddPropertyImage attaches a new enabled image to a property
	AddPropertyImage(ctx context.Context, id string, file string) (*dto.PropertyImageDTO, error)

	// GetOwnerByKey retrieves an owner by its business key. Returns nil
	// when no owner matches.
	GetOwnerByKey(ctx context.Context, ownerKey string) (*dto.OwnerDTO, error)
}

// CreatePropertyInput holds the validated fields for property creation
type CreatePropertyInput struct {
	Name         string
	Address      string
	Price        float64
	CodeInternal string
	Year         int
	OwnerKey     string
}

// UpdatePropertyInput holds the validated fields for property replacement.
// The owner reference is not part of this operation.
type UpdatePropertyInput struct {
	Name         string
	Address      string
	Price        float64
	CodeInternal string
	Year         int
}

type executor struct {
	store            store.Store
	clock            adapter.Clock
	hydrationWorkers int
	defaultPageSize  int
}

func NewExecutor(st store.Store, clock adapter.Clock, hydrationWorkers, defaultPageSize int) Executor {
	if hydrationWorkers < 1 {
		hydrationWorkers = 1
	}
	if defaultPageSize < 1 {
		defaultPageSize = 10
	}
	return &executor{
		store:            st,
		clock:            clock,
		hydrationWorkers: hydrationWorkers,
		defaultPageSize:  defaultPageSize,
	}
}

func (e *executor) ListProperties(ctx context.Context, filter store.PropertyFilter, page, pageSize int) ([]dto.PropertyListItem, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = e.defaultPageSize
	}

	properties, err := e.store.GetPropertiesByFilter(ctx, filter)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list properties: %v", err))
	}

	items := e.hydrateListItems(ctx, properties)

	logger.DebugCtx(ctx, "listed properties",
		zap.Int("matched", len(properties)),
		zap.Int("hydrated", len(items)),
		zap.Int("page", page),
		zap.Int("page_size", pageSize))

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []dto.PropertyListItem{}, nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], nil
}

// hydrateListItems attaches owner and main image to each property on a
// bounded worker pool. Result order follows the input order. An item whose
// hydration fails is logged and dropped, never failing the batch.
func (e *executor) hydrateListItems(ctx context.Context, properties []schema.Property) []dto.PropertyListItem {
	hydrated := make([]*dto.PropertyListItem, len(properties))

	pool := pond.NewPool(e.hydrationWorkers, pond.WithContext(ctx))
	for i := range properties {
		i := i
		pool.Submit(func() {
			property := &properties[i]

			owner, err := e.store.GetOwnerByKey(ctx, property.OwnerKey)
			if err != nil {
				logger.WarnCtx(ctx, "failed to hydrate property owner",
					zap.String("property_key", property.PropertyKey),
					zap.Error(err))
				return
			}

			mainImage, err := e.store.GetMainImageByProperty(ctx, property.PropertyKey)
			if err != nil {
				logger.WarnCtx(ctx, "failed to hydrate property main image",
					zap.String("property_key", property.PropertyKey),
					zap.Error(err))
				return
			}

			item := dto.MapPropertyToListItem(property, owner, mainImage)
			hydrated[i] = &item
		})
	}
	pool.StopAndWait()

	items := make([]dto.PropertyListItem, 0, len(hydrated))
	for _, item := range hydrated {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items
}

func (e *executor) GetPropertyByID(ctx context.Context, id string) (*dto.PropertyDetail, error) {
	property, err := e.store.Properties().GetByID(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if property == nil {
		return nil, nil
	}
	return dto.MapPropertyToDetail(property), nil
}

func (e *executor) GetPropertyDetail(ctx context.Context, id string) (*dto.PropertyDetail, error) {
	property, err := e.store.GetPropertyComplete(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if property == nil {
		return nil, nil
	}
	return dto.MapPropertyToDetail(property), nil
}

func (e *executor) ListPropertiesByOwner(ctx context.Context, ownerKey string) ([]dto.PropertyListItem, error) {
	properties, err := e.store.GetPropertiesByOwner(ctx, ownerKey)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list owner properties: %v", err))
	}
	return e.hydrateListItems(ctx, properties), nil
}

func (e *executor) CreateProperty(ctx context.Context, input CreatePropertyInput) (*dto.PropertyDetail, error) {
	now := e.clock.Now().UTC()
	property := &schema.Property{
		PropertyKey:  ulid.Make().String(),
		Name:         input.Name,
		Address:      input.Address,
		Price:        input.Price,
		CodeInternal: input.CodeInternal,
		Year:         input.Year,
		OwnerKey:     input.OwnerKey,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	stored, err := e.store.Properties().Add(ctx, property)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create property: %v", err))
	}

	logger.InfoCtx(ctx, "created property",
		zap.String("property_key", stored.PropertyKey),
		zap.String("owner_key", stored.OwnerKey))

	return dto.MapPropertyToDetail(stored), nil
}

func (e *executor) UpdateProperty(ctx context.Context, id string, input UpdatePropertyInput) (*dto.PropertyDetail, error) {
	property, err := e.store.Properties().GetByID(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if property == nil {
		return nil, nil
	}

	property.Name = input.Name
	property.Address = input.Address
	property.Price = input.Price
	property.CodeInternal = input.CodeInternal
	property.Year = input.Year
	property.UpdatedAt = e.clock.Now().UTC()

	if err := e.store.Properties().Update(ctx, property); err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to update property: %v", err))
	}

	logger.InfoCtx(ctx, "updated property", zap.String("property_key", property.PropertyKey))

	return dto.MapPropertyToDetail(property), nil
}

func (e *executor) DeleteProperty(ctx context.Context, id string) (bool, error) {
	property, err := e.store.Properties().GetByID(ctx, id)
	if err != nil {
		return false, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if property == nil {
		return false, nil
	}

	// Soft delete keeps the row so sale history stays queryable
	property.IsActive = false
	property.UpdatedAt = e.clock.Now().UTC()
	if err := e.store.Properties().Update(ctx, property); err != nil {
		return false, apierrors.NewDatabaseError(fmt.Sprintf("Failed to delete property: %v", err))
	}

	logger.InfoCtx(ctx, "deleted property", zap.String("property_key", property.PropertyKey))

	return true, nil
}

func (e *executor) AddPropertyImage(ctx context.Context, id string, file string) (*dto.PropertyImageDTO, error) {
	// Same opaque-id-then-natural-key resolution as the detail lookup, so
	// the :id route family stays consistent
	property, err := e.store.Properties().GetByID(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if property == nil {
		property, err = e.store.GetPropertyByKey(ctx, id)
		if err != nil {
			return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
		}
	}
	if property == nil {
		return nil, nil
	}

	now := e.clock.Now().UTC()
	image := &schema.PropertyImage{
		ImageKey:    ulid.Make().String(),
		PropertyKey: property.PropertyKey,
		File:        file,
		Enabled:     true,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := e.store.Images().Add(ctx, image)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to add property image: %v", err))
	}

	imageDTO := dto.MapImageToDTO(stored)
	return &imageDTO, nil
}

func (e *executor) GetOwnerByKey(ctx context.Context, ownerKey string) (*dto.OwnerDTO, error) {
	owner, err := e.store.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get owner: %v", err))
	}
	if owner == nil {
		return nil, nil
	}
	return dto.MapOwnerToDTO(owner), nil
}
