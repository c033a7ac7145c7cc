package dto

import "github.com/millionre/catalog-api/internal/store/schema"

// MapOwnerToDTO converts a stored owner into its external projection
func MapOwnerToDTO(owner *schema.Owner) *OwnerDTO {
	if owner == nil {
		return nil
	}
	return &OwnerDTO{
		ID:       owner.ID.String(),
		IDOwner:  owner.OwnerKey,
		Name:     owner.Name,
		Address:  owner.Address,
		Photo:    owner.Photo,
		Birthday: owner.Birthday,
	}
}

// MapImageToDTO converts a stored property image into its external projection
func MapImageToDTO(image *schema.PropertyImage) PropertyImageDTO {
	return PropertyImageDTO{
		ID:              image.ID.String(),
		IDPropertyImage: image.ImageKey,
		IDProperty:      image.PropertyKey,
		File:            image.File,
		Enabled:         image.Enabled,
	}
}

// MapTraceToDTO converts a stored sale trace into its external projection
func MapTraceToDTO(trace *schema.PropertyTrace) PropertyTraceDTO {
	return PropertyTraceDTO{
		ID:              trace.ID.String(),
		IDPropertyTrace: trace.TraceKey,
		IDProperty:      trace.PropertyKey,
		DateSale:        trace.DateSale,
		Name:            trace.Name,
		Value:           trace.Value,
		Tax:             trace.Tax,
	}
}

// MapPropertyToDetail builds the full projection of a property from its
// attached owner, images and traces. The main image is the first enabled
// image, or an empty string when the property has none. Images and traces
// always serialize as arrays, never null.
func MapPropertyToDetail(property *schema.Property) *PropertyDetail {
	if property == nil {
		return nil
	}

	images := make([]PropertyImageDTO, 0, len(property.Images))
	for i := range property.Images {
		images = append(images, MapImageToDTO(&property.Images[i]))
	}

	traces := make([]PropertyTraceDTO, 0, len(property.Traces))
	for i := range property.Traces {
		traces = append(traces, MapTraceToDTO(&property.Traces[i]))
	}

	mainImage := ""
	for i := range property.Images {
		if property.Images[i].Enabled {
			mainImage = property.Images[i].File
			break
		}
	}

	return &PropertyDetail{
		ID:           property.ID.String(),
		IDProperty:   property.PropertyKey,
		Name:         property.Name,
		Address:      property.Address,
		Price:        property.Price,
		CodeInternal: property.CodeInternal,
		Year:         property.Year,
		IDOwner:      property.OwnerKey,
		Owner:        MapOwnerToDTO(property.Owner),
		MainImage:    mainImage,
		Images:       images,
		Traces:       traces,
	}
}

// MapPropertyToListItem builds the summary projection of a property. The
// owner name falls back to a generic label when the owner reference is
// dangling, and the main image falls back to the frontend placeholder when
// the property has no enabled image.
func MapPropertyToListItem(property *schema.Property, owner *schema.Owner, mainImage *schema.PropertyImage) PropertyListItem {
	ownerName := FallbackOwnerName
	if owner != nil {
		ownerName = owner.Name
	}

	image := PlaceholderImage
	if mainImage != nil {
		image = mainImage.File
	}

	return PropertyListItem{
		ID:         property.ID.String(),
		IDProperty: property.PropertyKey,
		Name:       property.Name,
		Address:    property.Address,
		Price:      property.Price,
		Year:       property.Year,
		OwnerName:  ownerName,
		MainImage:  image,
	}
}
