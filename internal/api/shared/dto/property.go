package dto

import "time"

const (
	// FallbackOwnerName is shown on list items whose owner reference is
	// dangling
	FallbackOwnerName = "Propietario"
	// PlaceholderImage is the list-item main image when a property has no
	// enabled image. The detail view uses an empty string instead; the
	// frontend branches on each convention, so they must stay distinct.
	PlaceholderImage = "/placeholder-property.jpg"
)

// OwnerDTO is the external projection of an owner
type OwnerDTO struct {
	ID       string    `json:"id"`
	IDOwner  string    `json:"idOwner"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Photo    string    `json:"photo"`
	Birthday time.Time `json:"birthday"`
}

// PropertyImageDTO is the external projection of a property image
type PropertyImageDTO struct {
	ID              string `json:"id"`
	IDPropertyImage string `json:"idPropertyImage"`
	IDProperty      string `json:"idProperty"`
	File            string `json:"file"`
	Enabled         bool   `json:"enabled"`
}

// PropertyTraceDTO is the external projection of a sale trace
type PropertyTraceDTO struct {
	ID              string    `json:"id"`
	IDPropertyTrace string    `json:"idPropertyTrace"`
	IDProperty      string    `json:"idProperty"`
	DateSale        time.Time `json:"dateSale"`
	Name            string    `json:"name"`
	Value           float64   `json:"value"`
	Tax             float64   `json:"tax"`
}

// PropertyDetail is the full projection of a property, used by the
// single-property view
type PropertyDetail struct {
	ID           string             `json:"id"`
	IDProperty   string             `json:"idProperty"`
	Name         string             `json:"name"`
	Address      string             `json:"address"`
	Price        float64            `json:"price"`
	CodeInternal string             `json:"codeInternal"`
	Year         int                `json:"year"`
	IDOwner      string             `json:"idOwner"`
	Owner        *OwnerDTO          `json:"owner"`
	MainImage    string             `json:"mainImage"`
	Images       []PropertyImageDTO `json:"images"`
	Traces       []PropertyTraceDTO `json:"traces"`
}

// PropertyListItem is the summary projection of a property, used by search
// results
type PropertyListItem struct {
	ID         string  `json:"id"`
	IDProperty string  `json:"idProperty"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Price      float64 `json:"price"`
	Year       int     `json:"year"`
	OwnerName  string  `json:"ownerName"`
	MainImage  string  `json:"mainImage"`
}
