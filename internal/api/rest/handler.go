package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/millionre/catalog-api/internal/api/shared/dto"
	"github.com/millionre/catalog-api/internal/api/shared/executor"
	"github.com/millionre/catalog-api/internal/logger"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// ListProperties retrieves properties with optional filters
	// GET /api/properties?name=<name>&address=<address>&minPrice=<min>&maxPrice=<max>&page=<page>&pageSize=<size>
	ListProperties(c *gin.Context)

	// GetProperty retrieves a single property with owner, images and traces
	// GET /api/properties/:id
	GetProperty(c *gin.Context)

	// ListPropertiesByOwner retrieves all properties of an owner
	// GET /api/properties/owner/:ownerId
	ListPropertiesByOwner(c *gin.Context)

	// CreateProperty creates a new property
	// POST /api/properties
	CreateProperty(c *gin.Context)

	// UpdateProperty replaces a property's mutable fields
	// PUT /api/properties/:id
	UpdateProperty(c *gin.Context)

	// DeleteProperty soft-deletes a property
	// DELETE /api/properties/:id
	DeleteProperty(c *gin.Context)

	// AddPropertyImage attaches an image to a property
	// POST /api/properties/:id/images
	AddPropertyImage(c *gin.Context)

	// GetOwner retrieves an owner by its business key
	// GET /api/owners/:ownerId
	GetOwner(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

// ListProperties retrieves properties matching the query filters
func (h *handler) ListProperties(c *gin.Context) {
	params, err := ParseListPropertiesQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	items, err := h.executor.ListProperties(c.Request.Context(), params.Filter(), params.Page, params.PageSize)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("operation", "list_properties"))
		respondInternalError(c, "Failed to list properties")
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetProperty retrieves a single fully hydrated property
func (h *handler) GetProperty(c *gin.Context) {
	id := c.Param("id")

	property, err := h.executor.GetPropertyDetail(c.Request.Context(), id)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("operation", "get_property"), zap.String("id", id))
		respondInternalError(c, "Failed to get property")
		return
	}
	if property == nil {
		respondPropertyNotFound(c, id)
		return
	}

	c.JSON(http.StatusOK, property)
}

// ListPropertiesByOwner retrieves all properties of an owner
func (h *handler) ListPropertiesByOwner(c *gin.Context) {
	ownerID := c.Param("ownerId")
	if ownerID == "" {
		respondBadRequest(c, "Owner ID is required")
		return
	}

	items, err := h.executor.ListPropertiesByOwner(c.Request.Context(), ownerID)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("operation", "list_properties_by_owner"), zap.String("owner_id", ownerID))
		respondInternalError(c, "Failed to list properties")
		return
	}

	c.JSON(http.StatusOK, items)
}

// CreateProperty creates a new property
func (h *handler) CreateProperty(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	property, err := h.executor.CreateProperty(c.Request.Context(), executor.CreatePropertyInput{
		Name:         req.Name,
		Address:      req.Address,
		Price:        req.Price,
		CodeInternal: req.CodeInternal,
		Year:         req.Year,
		OwnerKey:     req.IDOwner,
	})
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("operation", "create_property"))
		respondInternalError(c, "Failed to create property")
		return
	}

	c.Header("Location", fmt.Sprintf("/api/properties/%s", property.ID))
	c.JSON(http.StatusCreated, property)
}

// UpdateProperty replaces a property's mutable fields
func (h *handler) UpdateProperty(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	property, err := h.executor.UpdateProperty(c.Request.Context(), id, executor.UpdatePropertyInput{
		Name:         req.Name,
		Address:      req.Address,
		Price:        req.Price,
		CodeInternal: req.CodeInternal,
		Year:         req.Year,
	})
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("operation", "update_property"), zap.String("id", id))
		respondInternalError(c, "Failed to update property")
		return
	}
	if property == nil {
		respondPropertyNotFound(c, id)
		return
	}

	c.JSON(http.StatusOK, property)
}

// DeleteProperty soft-deletes a property
func (h *handler) DeleteProperty(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.executor.DeleteProperty(c.Request.Context(), id)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("operation", "delete_property"), zap.String("id", id))
		respondInternalError(c, "Failed to delete property")
		return
	}
	if !deleted {
		respondPropertyNotFound(c, id)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddPropertyImage attaches a new enabled image to a property
func (h *handler) AddPropertyImage(c *gin.Context) {
	id := c.Param("id")

	var req dto.AddPropertyImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	image, err := h.executor.AddPropertyImage(c.Request.Context(), id, req.File)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("operation", "add_property_image"), zap.String("id", id))
		respondInternalError(c, "Failed to add property image")
		return
	}
	if image == nil {
		respondPropertyNotFound(c, id)
		return
	}

	c.JSON(http.StatusCreated, image)
}

// GetOwner retrieves an owner by its business key
func (h *handler) GetOwner(c *gin.Context) {
	ownerID := c.Param("ownerId")

	owner, err := h.executor.GetOwnerByKey(c.Request.Context(), ownerID)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("operation", "get_owner"), zap.String("owner_id", ownerID))
		respondInternalError(c, "Failed to get owner")
		return
	}
	if owner == nil {
		respondNotFound(c, fmt.Sprintf("Owner with ID %s not found", ownerID))
		return
	}

	c.JSON(http.StatusOK, owner)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
