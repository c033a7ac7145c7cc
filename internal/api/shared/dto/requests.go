package dto

// CreatePropertyRequest is the body of POST /api/properties
type CreatePropertyRequest struct {
	Name         string  `json:"name" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	Price        float64 `json:"price" binding:"gte=0"`
	CodeInternal string  `json:"codeInternal"`
	Year         int     `json:"year"`
	IDOwner      string  `json:"idOwner" binding:"required"`
}

// UpdatePropertyRequest is the body of PUT /api/properties/:id. The owner
// reference is immutable through this operation.
type UpdatePropertyRequest struct {
	Name         string  `json:"name" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	Price        float64 `json:"price" binding:"gte=0"`
	CodeInternal string  `json:"codeInternal"`
	Year         int     `json:"year"`
}

// AddPropertyImageRequest is the body of POST /api/properties/:id/images
type AddPropertyImageRequest struct {
	File string `json:"file" binding:"required"`
}
