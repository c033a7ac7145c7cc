package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/millionre/catalog-api/internal/store/schema"
)

func TestMapPropertyToDetail(t *testing.T) {
	property := &schema.Property{
		ID:           uuid.New(),
		PropertyKey:  "PROP001",
		Name:         "Casa Familiar en La Zona Rosa",
		Address:      "Carrera 13 #85-40, Bogotá",
		Price:        850000000,
		CodeInternal: "ZR-001",
		Year:         2020,
		OwnerKey:     "OWN001",
		Owner: &schema.Owner{
			ID:       uuid.New(),
			OwnerKey: "OWN001",
			Name:     "Carlos Rodríguez",
			Birthday: time.Date(1980, 5, 15, 0, 0, 0, 0, time.UTC),
		},
		Images: []schema.PropertyImage{
			{ID: uuid.New(), ImageKey: "IMG001", PropertyKey: "PROP001", File: "https://example.com/1.jpg", Enabled: false},
			{ID: uuid.New(), ImageKey: "IMG002", PropertyKey: "PROP001", File: "https://example.com/2.jpg", Enabled: true},
		},
		Traces: []schema.PropertyTrace{
			{ID: uuid.New(), TraceKey: "TRC001", PropertyKey: "PROP001", Name: "Venta Inicial", Value: 850000000, Tax: 34000000},
		},
	}

	detail := MapPropertyToDetail(property)
	require.NotNil(t, detail)

	assert.Equal(t, property.ID.String(), detail.ID)
	assert.Equal(t, "PROP001", detail.IDProperty)
	assert.Equal(t, "OWN001", detail.IDOwner)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "Carlos Rodríguez", detail.Owner.Name)

	// Main image is the first enabled one, not simply the first
	assert.Equal(t, "https://example.com/2.jpg", detail.MainImage)

	require.Len(t, detail.Images, 2)
	assert.Equal(t, "IMG001", detail.Images[0].IDPropertyImage)
	require.Len(t, detail.Traces, 1)
	assert.Equal(t, "TRC001", detail.Traces[0].IDPropertyTrace)
}

func TestMapPropertyToDetailFallbacks(t *testing.T) {
	property := &schema.Property{
		ID:          uuid.New(),
		PropertyKey: "PROP002",
		OwnerKey:    "OWN-MISSING",
	}

	detail := MapPropertyToDetail(property)
	require.NotNil(t, detail)

	// Detail uses an empty main image, never the list placeholder
	assert.Equal(t, "", detail.MainImage)
	assert.Nil(t, detail.Owner)

	// Empty collections serialize as arrays, not null
	assert.NotNil(t, detail.Images)
	assert.Empty(t, detail.Images)
	assert.NotNil(t, detail.Traces)
	assert.Empty(t, detail.Traces)
}

func TestMapPropertyToListItemFallbacks(t *testing.T) {
	property := &schema.Property{
		ID:          uuid.New(),
		PropertyKey: "PROP002",
		Name:        "Casa Huérfana",
		OwnerKey:    "OWN-MISSING",
	}

	item := MapPropertyToListItem(property, nil, nil)

	// The same missing data falls back differently than on the detail view
	assert.Equal(t, FallbackOwnerName, item.OwnerName)
	assert.Equal(t, PlaceholderImage, item.MainImage)
}

func TestMapPropertyToListItem(t *testing.T) {
	property := &schema.Property{
		ID:          uuid.New(),
		PropertyKey: "PROP001",
		Name:        "Casa Familiar en La Zona Rosa",
		Address:     "Carrera 13 #85-40, Bogotá",
		Price:       850000000,
		Year:        2020,
		OwnerKey:    "OWN001",
	}
	owner := &schema.Owner{OwnerKey: "OWN001", Name: "Carlos Rodríguez"}
	image := &schema.PropertyImage{ImageKey: "IMG001", File: "https://example.com/main.jpg", Enabled: true}

	item := MapPropertyToListItem(property, owner, image)

	assert.Equal(t, "PROP001", item.IDProperty)
	assert.Equal(t, "Carlos Rodríguez", item.OwnerName)
	assert.Equal(t, "https://example.com/main.jpg", item.MainImage)
	assert.Equal(t, float64(850000000), item.Price)
}
