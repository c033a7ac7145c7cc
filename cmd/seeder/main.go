package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/millionre/catalog-api/internal/adapter"
	"github.com/millionre/catalog-api/internal/config"
	"github.com/millionre/catalog-api/internal/logger"
	"github.com/millionre/catalog-api/internal/seed"
	"github.com/millionre/catalog-api/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadSeederConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx := context.Background()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "seeder",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// The seeder always migrates so it can run against an empty database
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}

	dataStore := store.NewPGStore(db)
	seeder := seed.NewSeeder(dataStore, adapter.NewClock())

	seeded, err := seeder.Seed(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to seed database", zap.Error(err))
	}
	if !seeded {
		logger.InfoCtx(ctx, "Database already seeded, nothing to do")
		return
	}

	logger.InfoCtx(ctx, "Seeded database with sample catalog data")
}
