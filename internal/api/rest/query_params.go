package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/millionre/catalog-api/internal/store"
)

// MAX_PAGE_SIZE caps pageSize at the REST layer. Larger values are clamped
// silently rather than rejected.
const MAX_PAGE_SIZE = 100

// ListPropertiesQueryParams holds query parameters for GET /properties
type ListPropertiesQueryParams struct {
	// Filters
	Name     string   `form:"name"`
	Address  string   `form:"address"`
	MinPrice *float64 `form:"minPrice"`
	MaxPrice *float64 `form:"maxPrice"`

	// Pagination
	Page     int `form:"page,default=1"`
	PageSize int `form:"pageSize,default=10"`
}

// ParseListPropertiesQuery parses query parameters for GET /properties
func ParseListPropertiesQuery(c *gin.Context) (*ListPropertiesQueryParams, error) {
	var params ListPropertiesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Normalize pagination
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 10
	}
	if params.PageSize > MAX_PAGE_SIZE {
		params.PageSize = MAX_PAGE_SIZE
	}

	return &params, nil
}

// Filter converts the query parameters into a store-level property filter
func (p *ListPropertiesQueryParams) Filter() store.PropertyFilter {
	return store.PropertyFilter{
		Name:     p.Name,
		Address:  p.Address,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
	}
}
