// Package seed loads a small sample catalog into an empty database so the
// API has data to serve during development and demos.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/millionre/catalog-api/internal/adapter"
	"github.com/millionre/catalog-api/internal/store"
	"github.com/millionre/catalog-api/internal/store/schema"
)

// Seeder inserts the sample dataset
type Seeder struct {
	store store.Store
	clock adapter.Clock
}

// NewSeeder creates a new seeder
func NewSeeder(st store.Store, clock adapter.Clock) *Seeder {
	return &Seeder{store: st, clock: clock}
}

// Seed inserts the sample owners, properties, images and traces. Returns
// false without touching the database when owners already exist.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	count, err := s.store.Owners().Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check existing owners: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	now := s.clock.Now().UTC()

	for _, owner := range sampleOwners(now) {
		if _, err := s.store.Owners().Add(ctx, &owner); err != nil {
			return false, fmt.Errorf("failed to seed owner %s: %w", owner.OwnerKey, err)
		}
	}

	for _, property := range sampleProperties(now) {
		if _, err := s.store.Properties().Add(ctx, &property); err != nil {
			return false, fmt.Errorf("failed to seed property %s: %w", property.PropertyKey, err)
		}
	}

	for _, image := range sampleImages(now) {
		if _, err := s.store.Images().Add(ctx, &image); err != nil {
			return false, fmt.Errorf("failed to seed image %s: %w", image.ImageKey, err)
		}
	}

	for _, trace := range sampleTraces(now) {
		if _, err := s.store.Traces().Add(ctx, &trace); err != nil {
			return false, fmt.Errorf("failed to seed trace %s: %w", trace.TraceKey, err)
		}
	}

	return true, nil
}

func sampleOwners(now time.Time) []schema.Owner {
	return []schema.Owner{
		{
			OwnerKey:  "OWN001",
			Name:      "Carlos Rodríguez",
			Address:   "Calle 123 #45-67, Bogotá",
			Photo:     "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop",
			Birthday:  time.Date(1980, 5, 15, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			OwnerKey:  "OWN002",
			Name:      "María González",
			Address:   "Carrera 15 #20-30, Medellín",
			Photo:     "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop",
			Birthday:  time.Date(1975, 8, 22, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			OwnerKey:  "OWN003",
			Name:      "Juan Pérez",
			Address:   "Avenida 6 #12-34, Cali",
			Photo:     "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=150&h=150&fit=crop",
			Birthday:  time.Date(1985, 12, 10, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func sampleProperties(now time.Time) []schema.Property {
	return []schema.Property{
		{
			PropertyKey:  "PROP001",
			Name:         "Casa Familiar en La Zona Rosa",
			Address:      "Carrera 13 #85-40, Zona Rosa, Bogotá",
			Price:        850000000,
			CodeInternal: "ZR-001",
			Year:         2020,
			OwnerKey:     "OWN001",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			PropertyKey:  "PROP002",
			Name:         "Apartamento Moderno en El Poblado",
			Address:      "Calle 10 #43A-30, El Poblado, Medellín",
			Price:        650000000,
			CodeInternal: "EP-002",
			Year:         2019,
			OwnerKey:     "OWN002",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			PropertyKey:  "PROP003",
			Name:         "Penthouse con Vista al Mar",
			Address:      "Avenida Colombia #15-25, Cali",
			Price:        1200000000,
			CodeInternal: "VM-003",
			Year:         2021,
			OwnerKey:     "OWN003",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			PropertyKey:  "PROP004",
			Name:         "Casa Campestre en Chía",
			Address:      "Kilómetro 5 Vía Chía, Cundinamarca",
			Price:        450000000,
			CodeInternal: "CH-004",
			Year:         2018,
			OwnerKey:     "OWN001",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			PropertyKey:  "PROP005",
			Name:         "Oficina Empresarial Centro",
			Address:      "Carrera 7 #32-16, Centro, Bogotá",
			Price:        320000000,
			CodeInternal: "CE-005",
			Year:         2017,
			OwnerKey:     "OWN002",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			PropertyKey:  "PROP006",
			Name:         "Loft Industrial en Chapinero",
			Address:      "Carrera 11 #93-15, Chapinero, Bogotá",
			Price:        480000000,
			CodeInternal: "CH-006",
			Year:         2022,
			OwnerKey:     "OWN003",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}

func sampleImages(now time.Time) []schema.PropertyImage {
	files := []struct {
		key      string
		property string
		file     string
	}{
		{"IMG001", "PROP001", "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800"},
		{"IMG002", "PROP001", "https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=800"},
		{"IMG003", "PROP001", "https://images.unsplash.com/photo-1600566753190-17f0baa2a6c3?w=800"},
		{"IMG004", "PROP001", "https://images.unsplash.com/photo-1600607687920-4e2a09cf159d?w=800"},
		{"IMG005", "PROP001", "https://images.unsplash.com/photo-1600566753086-00f18fb6b3ea?w=800"},
		{"IMG006", "PROP002", "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=800"},
		{"IMG007", "PROP002", "https://images.unsplash.com/photo-1600210492493-0946911123ea?w=800"},
		{"IMG008", "PROP002", "https://images.unsplash.com/photo-1600607687644-c7171b42498f?w=800"},
		{"IMG009", "PROP002", "https://images.unsplash.com/photo-1600585154526-990dced4db0d?w=800"},
		{"IMG010", "PROP003", "https://images.unsplash.com/photo-1600607687920-4e2a09cf159d?w=800"},
		{"IMG011", "PROP003", "https://images.unsplash.com/photo-1600607688969-a5bfcd646154?w=800"},
		{"IMG012", "PROP003", "https://images.unsplash.com/photo-1600047509807-ba8f99d2cdde?w=800"},
		{"IMG013", "PROP003", "https://images.unsplash.com/photo-1600607687644-afd25c5c8d6f?w=800"},
		{"IMG014", "PROP003", "https://images.unsplash.com/photo-1600566752355-35792bedcfea?w=800"},
		{"IMG015", "PROP004", "https://images.unsplash.com/photo-1600585154363-67eb9e2e2099?w=800"},
		{"IMG016", "PROP004", "https://images.unsplash.com/photo-1600566753086-00f18fb6b3ea?w=800"},
		{"IMG017", "PROP004", "https://images.unsplash.com/photo-1600210492486-724fe5c67fb0?w=800"},
		{"IMG018", "PROP004", "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800"},
		{"IMG019", "PROP005", "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=800"},
		{"IMG020", "PROP005", "https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=800"},
		{"IMG021", "PROP005", "https://images.unsplash.com/photo-1600210491892-03d54c0aaf87?w=800"},
		{"IMG022", "PROP006", "https://images.unsplash.com/photo-1600607687644-c7171b42498f?w=800"},
		{"IMG023", "PROP006", "https://images.unsplash.com/photo-1600607688969-a5bfcd646154?w=800"},
		{"IMG024", "PROP006", "https://images.unsplash.com/photo-1600566752355-35792bedcfea?w=800"},
		{"IMG025", "PROP006", "https://images.unsplash.com/photo-1600047509807-ba8f99d2cdde?w=800"},
		{"IMG026", "PROP006", "https://images.unsplash.com/photo-1600210492493-0946911123ea?w=800"},
	}

	images := make([]schema.PropertyImage, 0, len(files))
	for i, f := range files {
		images = append(images, schema.PropertyImage{
			ImageKey:    f.key,
			PropertyKey: f.property,
			File:        f.file,
			Enabled:     true,
			IsActive:    true,
			// Stagger creation times so the first image per property stays
			// the representative one
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
			UpdatedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	return images
}

func sampleTraces(now time.Time) []schema.PropertyTrace {
	sales := []struct {
		key      string
		property string
		daysAgo  int
		value    float64
		tax      float64
	}{
		{"TRC001", "PROP001", 30, 850000000, 34000000},
		{"TRC002", "PROP002", 60, 650000000, 26000000},
		{"TRC003", "PROP003", 15, 1200000000, 48000000},
		{"TRC004", "PROP004", 90, 450000000, 18000000},
		{"TRC005", "PROP005", 45, 320000000, 12800000},
	}

	traces := make([]schema.PropertyTrace, 0, len(sales))
	for _, sale := range sales {
		traces = append(traces, schema.PropertyTrace{
			TraceKey:    sale.key,
			PropertyKey: sale.property,
			DateSale:    now.AddDate(0, 0, -sale.daysAgo),
			Name:        "Venta Inicial",
			Value:       sale.value,
			Tax:         sale.tax,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return traces
}
