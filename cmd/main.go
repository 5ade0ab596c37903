package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/latoulicious/adventour/internal/maintenance"
	"github.com/latoulicious/adventour/internal/version"
	"github.com/latoulicious/adventour/pkg/config"
	"github.com/latoulicious/adventour/pkg/database"
	"github.com/latoulicious/adventour/pkg/database/migration"
	"github.com/latoulicious/adventour/pkg/database/repository"
	"github.com/latoulicious/adventour/pkg/database/seed"
	"github.com/latoulicious/adventour/pkg/logging"
)

func main() {
	// Initialize application with proper error handling
	if err := initializeApplication(); err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}
}

// initializeApplication handles the complete application initialization process
func initializeApplication() error {
	cm, err := config.NewConfigManager()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cm.Config()
	logOpts := logging.Options{Level: cfg.Logger.Level, Format: cfg.Logger.Format}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	bootLogger, err := logging.NewZapLogger("system", logOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer bootLogger.Sync()

	bootLogger.Info("Starting", mergeFields(version.Get().Fields(), map[string]interface{}{
		"config_source": cm.Source(),
		"driver":        cfg.Database.Driver,
	}))

	if err := migration.RunMigration(db, bootLogger); err != nil {
		return err
	}

	factory, flush := initializeLogging(repository.NewLogRepository(db), cfg.Logger, logOpts)
	defer flush()
	systemLogger := factory.CreateLogger("system")

	store := repository.NewStore(db,
		repository.WithBcryptCost(cfg.Security.BcryptCost),
		repository.WithLoggerFactory(factory),
	)

	ctx := context.Background()
	if err := seedDatabase(ctx, store, cfg.Seed, factory.CreateLogger("seed")); err != nil {
		return err
	}

	scheduler, err := maintenance.NewScheduler(store.Logs, cfg.Maintenance, factory.CreateLogger("maintenance"))
	if err != nil {
		return fmt.Errorf("failed to create maintenance scheduler: %w", err)
	}
	scheduler.Start()

	healthServer := startHealthCheckServer(cfg.Health.Addr, sqlDB, systemLogger)

	systemLogger.Info("AdvenTOUR is running. Press CTRL-C to exit.", nil)

	// Wait here until CTRL-C or other term signal is received.
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	systemLogger.Info("Shutting down gracefully...", nil)
	shutdownHealthServer(healthServer, systemLogger)
	scheduler.Stop()
	systemLogger.Info("Application shutdown complete", nil)
	return nil
}

// initializeLogging builds the logger factory. When logs are saved to the
// database the returned flush waits for pending writes.
func initializeLogging(repo logging.LogRepository, cfg config.LoggerConfig, opts logging.Options) (logging.LoggerFactory, func()) {
	if !cfg.SaveToDB {
		return logging.NewLoggerFactory(opts), func() {}
	}

	factory := logging.NewDatabaseLoggerFactory(opts, repo)
	return factory, factory.Flush
}

// seedDatabase makes sure the region and biome catalog exists and loads the
// configured fixture file, if any. A fixture whose records already exist is
// skipped.
func seedDatabase(ctx context.Context, store *repository.Store, cfg config.SeedConfig, logger logging.Logger) error {
	catalog, err := seed.EnsureCatalog(ctx, store)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	logger.Info("Catalog ready", map[string]interface{}{
		"regions_created": catalog.Regions,
		"biomes_created":  catalog.Biomes,
	})

	if cfg.File == "" {
		return nil
	}

	fixture, err := seed.LoadFile(cfg.File)
	if err != nil {
		return err
	}
	_, err = seed.Run(ctx, store, fixture, logger)
	switch {
	case repository.IsConstraint(err, repository.ConstraintUnique):
		logger.Warn("Seed fixture already loaded, skipping", map[string]interface{}{"file": cfg.File})
		return nil
	case err != nil:
		return fmt.Errorf("failed to seed %s: %w", cfg.File, err)
	}
	return nil
}

func mergeFields(base, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}
