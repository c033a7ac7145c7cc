package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/millionre/catalog-api/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// Check if we should use an external database (for CI or local development)
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbUser := os.Getenv("TEST_DB_USER")
	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")

	var dsn string
	var err error

	if dbHost != "" {
		// Use external database
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
	} else {
		// Start a PostgreSQL container for testing
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Started PostgreSQL container\n")
	}

	// Connect to the database
	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Initialize the database schema
	if err := Migrate(testDB); err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Run tests
	code := m.Run()

	// Cleanup
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	os.Exit(code)
}

// initPGTestDB initializes a test store for each test. Tests run inside a
// transaction that is rolled back on cleanup.
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

func addOwner(t *testing.T, s Store, key, name string) *schema.Owner {
	t.Helper()
	now := time.Now().UTC()
	owner, err := s.Owners().Add(context.Background(), &schema.Owner{
		OwnerKey:  key,
		Name:      name,
		Address:   "Calle 1 #2-3",
		Photo:     "https://example.com/photo.jpg",
		Birthday:  time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NotNil(t, owner)
	return owner
}

func addProperty(t *testing.T, s Store, key, name, address string, price float64, ownerKey string, active bool) *schema.Property {
	t.Helper()
	now := time.Now().UTC()
	property, err := s.Properties().Add(context.Background(), &schema.Property{
		PropertyKey:  key,
		Name:         name,
		Address:      address,
		Price:        price,
		CodeInternal: "CI-" + key,
		Year:         2020,
		OwnerKey:     ownerKey,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	require.NotNil(t, property)
	return property
}

func addImage(t *testing.T, s Store, key, propertyKey, file string, enabled bool, createdAt time.Time) *schema.PropertyImage {
	t.Helper()
	image, err := s.Images().Add(context.Background(), &schema.PropertyImage{
		ImageKey:    key,
		PropertyKey: propertyKey,
		File:        file,
		Enabled:     enabled,
		IsActive:    true,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	require.NoError(t, err)
	require.NotNil(t, image)
	return image
}

func addTrace(t *testing.T, s Store, key, propertyKey string, dateSale time.Time, value float64) *schema.PropertyTrace {
	t.Helper()
	now := time.Now().UTC()
	trace, err := s.Traces().Add(context.Background(), &schema.PropertyTrace{
		TraceKey:    key,
		PropertyKey: propertyKey,
		DateSale:    dateSale,
		Name:        "Venta Inicial",
		Value:       value,
		Tax:         value * 0.04,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	require.NotNil(t, trace)
	return trace
}

func TestRepositoryCRUD(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	owner := addOwner(t, s, "OWN100", "Carlos Rodríguez")
	assert.NotEmpty(t, owner.ID)

	fetched, err := s.Owners().GetByID(ctx, owner.ID.String())
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Carlos Rodríguez", fetched.Name)
	assert.Equal(t, "OWN100", fetched.OwnerKey)

	exists, err := s.Owners().Exists(ctx, owner.ID.String())
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := s.Owners().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	fetched.Name = "Carlos R."
	require.NoError(t, s.Owners().Update(ctx, fetched))

	updated, err := s.Owners().GetByID(ctx, owner.ID.String())
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Carlos R.", updated.Name)

	require.NoError(t, s.Owners().Delete(ctx, owner.ID.String()))

	gone, err := s.Owners().GetByID(ctx, owner.ID.String())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRepositoryQueries(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	addProperty(t, s, "PROP101", "Casa A", "Calle 1", 100, "OWN101", true)
	addProperty(t, s, "PROP102", "Casa B", "Calle 2", 200, "OWN101", false)

	all, err := s.Properties().GetAll(ctx)
	require.NoError(t, err)
	// GetAll does not filter on the active flag
	assert.Len(t, all, 2)

	found, err := s.Properties().Find(ctx, "price > ?", 150)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "PROP102", found[0].PropertyKey)

	count, err := s.Properties().CountWhere(ctx, "is_active = ?", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepositoryMalformedID(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	// Malformed ids behave as not-found on every read path
	owner, err := s.Owners().GetByID(ctx, "not-a-valid-id")
	require.NoError(t, err)
	assert.Nil(t, owner)

	exists, err := s.Owners().Exists(ctx, "not-a-valid-id")
	require.NoError(t, err)
	assert.False(t, exists)

	// Delete is a no-op
	require.NoError(t, s.Owners().Delete(ctx, "not-a-valid-id"))

	// Update without an id is the one hard failure
	err = s.Owners().Update(ctx, &schema.Owner{Name: "nobody"})
	assert.ErrorIs(t, err, ErrInvalidEntityID)
}

func TestGetPropertiesByFilter(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	addOwner(t, s, "OWN200", "María González")
	addProperty(t, s, "PROP201", "Casa Familiar en La Zona Rosa", "Carrera 13 #85-40, Bogotá", 850000000, "OWN200", true)
	addProperty(t, s, "PROP202", "Apartamento Moderno", "Calle 10 #43A-30, Medellín", 650000000, "OWN200", true)
	addProperty(t, s, "PROP203", "Casa Campestre", "Kilómetro 5 Vía Chía", 450000000, "OWN200", false)

	t.Run("name substring is case-insensitive", func(t *testing.T) {
		results, err := s.GetPropertiesByFilter(ctx, PropertyFilter{Name: "cAsA"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "PROP201", results[0].PropertyKey)
	})

	t.Run("address substring", func(t *testing.T) {
		results, err := s.GetPropertiesByFilter(ctx, PropertyFilter{Address: "medellín"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "PROP202", results[0].PropertyKey)
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		min := 650000000.0
		max := 850000000.0
		results, err := s.GetPropertiesByFilter(ctx, PropertyFilter{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("empty filter returns all active", func(t *testing.T) {
		results, err := s.GetPropertiesByFilter(ctx, PropertyFilter{})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("inactive properties are excluded", func(t *testing.T) {
		results, err := s.GetPropertiesByFilter(ctx, PropertyFilter{Name: "Campestre"})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		results, err := s.GetPropertiesByFilter(ctx, PropertyFilter{Name: "Penthouse"})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestGetPropertiesByOwner(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	addOwner(t, s, "OWN300", "Juan Pérez")
	addProperty(t, s, "PROP301", "Loft Industrial", "Carrera 11 #93-15", 480000000, "OWN300", true)
	addProperty(t, s, "PROP302", "Oficina Centro", "Carrera 7 #32-16", 320000000, "OWN300", false)
	addProperty(t, s, "PROP303", "Penthouse", "Avenida Colombia #15-25", 1200000000, "OWN999", true)

	results, err := s.GetPropertiesByOwner(ctx, "OWN300")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "PROP301", results[0].PropertyKey)
}

func TestGetPropertyComplete(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	addOwner(t, s, "OWN400", "Carlos Rodríguez")
	property := addProperty(t, s, "PROP401", "Casa Familiar", "Carrera 13 #85-40", 850000000, "OWN400", true)

	addImage(t, s, "IMG401", "PROP401", "https://example.com/1.jpg", true, base)
	addImage(t, s, "IMG402", "PROP401", "https://example.com/2.jpg", false, base.Add(time.Second))
	addImage(t, s, "IMG403", "PROP401", "https://example.com/3.jpg", true, base.Add(2*time.Second))

	addTrace(t, s, "TRC401", "PROP401", base.AddDate(0, 0, -60), 700000000)
	addTrace(t, s, "TRC402", "PROP401", base.AddDate(0, 0, -10), 850000000)

	t.Run("lookup by opaque id", func(t *testing.T) {
		complete, err := s.GetPropertyComplete(ctx, property.ID.String())
		require.NoError(t, err)
		require.NotNil(t, complete)

		require.NotNil(t, complete.Owner)
		assert.Equal(t, "Carlos Rodríguez", complete.Owner.Name)

		// Only enabled images, in insertion order
		require.Len(t, complete.Images, 2)
		assert.Equal(t, "IMG401", complete.Images[0].ImageKey)
		assert.Equal(t, "IMG403", complete.Images[1].ImageKey)

		// Most recent sale first
		require.Len(t, complete.Traces, 2)
		assert.Equal(t, "TRC402", complete.Traces[0].TraceKey)
		assert.Equal(t, "TRC401", complete.Traces[1].TraceKey)
	})

	t.Run("lookup falls back to business key", func(t *testing.T) {
		complete, err := s.GetPropertyComplete(ctx, "PROP401")
		require.NoError(t, err)
		require.NotNil(t, complete)
		assert.Equal(t, property.ID, complete.ID)
	})

	t.Run("unknown id yields nil", func(t *testing.T) {
		complete, err := s.GetPropertyComplete(ctx, "PROP999")
		require.NoError(t, err)
		assert.Nil(t, complete)
	})
}

func TestGetPropertyCompleteDanglingOwner(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	property := addProperty(t, s, "PROP501", "Casa Huérfana", "Calle 9 #8-7", 100000000, "OWN-MISSING", true)

	complete, err := s.GetPropertyComplete(ctx, property.ID.String())
	require.NoError(t, err)
	require.NotNil(t, complete)
	assert.Nil(t, complete.Owner)
	assert.Empty(t, complete.Images)
	assert.Empty(t, complete.Traces)
}

func TestGetMainImageByProperty(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	addImage(t, s, "IMG601", "PROP601", "https://example.com/disabled.jpg", false, base)
	addImage(t, s, "IMG602", "PROP601", "https://example.com/main.jpg", true, base.Add(time.Second))
	addImage(t, s, "IMG603", "PROP601", "https://example.com/later.jpg", true, base.Add(2*time.Second))

	main, err := s.GetMainImageByProperty(ctx, "PROP601")
	require.NoError(t, err)
	require.NotNil(t, main)
	assert.Equal(t, "IMG602", main.ImageKey)

	none, err := s.GetMainImageByProperty(ctx, "PROP-NO-IMAGES")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGetOwnersByName(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	addOwner(t, s, "OWN700", "Carlos Rodríguez")
	addOwner(t, s, "OWN701", "María González")

	results, err := s.GetOwnersByName(ctx, "rodrí")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "OWN700", results[0].OwnerKey)
}

func TestGetTracesByDateRange(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	addTrace(t, s, "TRC801", "PROP801", base.AddDate(0, 0, -90), 100)
	addTrace(t, s, "TRC802", "PROP801", base.AddDate(0, 0, -30), 200)
	addTrace(t, s, "TRC803", "PROP802", base.AddDate(0, 0, -10), 300)

	results, err := s.GetTracesByDateRange(ctx, base.AddDate(0, 0, -40), base)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "TRC803", results[0].TraceKey)
	assert.Equal(t, "TRC802", results[1].TraceKey)
}

func TestSoftDeleteVisibility(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	addOwner(t, s, "OWN900", "Juan Pérez")
	property := addProperty(t, s, "PROP901", "Casa Visible", "Calle 5 #4-3", 200000000, "OWN900", true)

	// Soft delete
	property.IsActive = false
	property.UpdatedAt = time.Now().UTC()
	require.NoError(t, s.Properties().Update(ctx, property))

	// Direct lookups still see the row
	fetched, err := s.Properties().GetByID(ctx, property.ID.String())
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.False(t, fetched.IsActive)

	complete, err := s.GetPropertyComplete(ctx, property.ID.String())
	require.NoError(t, err)
	require.NotNil(t, complete)

	// List paths do not
	results, err := s.GetPropertiesByFilter(ctx, PropertyFilter{})
	require.NoError(t, err)
	assert.Empty(t, results)

	byOwner, err := s.GetPropertiesByOwner(ctx, "OWN900")
	require.NoError(t, err)
	assert.Empty(t, byOwner)
}
