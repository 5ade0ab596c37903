package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/latoulicious/adventour/pkg/config"
	"github.com/latoulicious/adventour/pkg/database"
	"github.com/latoulicious/adventour/pkg/database/migration"
	"github.com/latoulicious/adventour/pkg/database/repository"
	"github.com/latoulicious/adventour/pkg/database/seed"
	"github.com/latoulicious/adventour/pkg/logging"
	"github.com/latoulicious/adventour/tools"
	"gorm.io/gorm"
)

// options holds the parsed command line flags
type options struct {
	reset    bool
	migrate  bool
	rollback bool
	check    bool
	seedFile string
}

func (o options) empty() bool {
	return !o.reset && !o.migrate && !o.rollback && !o.check && o.seedFile == ""
}

func main() {
	// Parse the command line arguments
	var opts options
	flag.BoolVar(&opts.reset, "reset", false, "Drop every table before migrating")
	flag.BoolVar(&opts.migrate, "migrate", false, "Run the migrations")
	flag.BoolVar(&opts.rollback, "rollback", false, "Drop the review CHECK constraints (PostgreSQL only)")
	flag.StringVar(&opts.seedFile, "seed", "", "Seed the catalog and the records in this YAML fixture")
	flag.BoolVar(&opts.check, "check", false, "Check database connectivity and schema")
	flag.Parse()

	if opts.empty() {
		flag.Usage()
		return
	}

	cm, err := config.NewConfigManager()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := cm.Config()

	logger, err := logging.NewZapLogger("migration", logging.Options{Level: cfg.Logger.Level, Format: cfg.Logger.Format})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)
	logger.Info("Connected to database", map[string]interface{}{"driver": cfg.Database.Driver})

	store := repository.NewStore(db, repository.WithBcryptCost(cfg.Security.BcryptCost))
	if err := run(context.Background(), store, opts, logger, os.Stdout); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

// run applies the requested steps in order: check, reset, migrate, seed.
// Rollback runs on its own since migrating would restore the constraints.
func run(ctx context.Context, store *repository.Store, opts options, logger logging.Logger, out io.Writer) error {
	db := store.DB()

	if opts.rollback {
		if opts.reset || opts.migrate || opts.seedFile != "" {
			return errors.New("-rollback cannot be combined with -reset, -migrate or -seed")
		}
		return rollback(db, logger)
	}

	if opts.check {
		if err := tools.DBcheck(db, out); err != nil {
			return fmt.Errorf("database check failed: %w", err)
		}
	}

	// Reset Flag
	if opts.reset {
		logger.Warn("Resetting database...", nil)
		if err := migration.Reset(db, logger); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}

	// Seeding needs the schema, so it implies a migration
	if opts.reset || opts.migrate || opts.seedFile != "" {
		if err := migration.RunMigration(db, logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if opts.seedFile != "" {
		fixture, err := seed.LoadFile(opts.seedFile)
		if err != nil {
			return fmt.Errorf("failed to load seed file: %w", err)
		}

		summary, err := seed.Run(ctx, store, fixture, logger)
		if err != nil {
			logger.Error("Seeding failed", err, map[string]interface{}{"file": opts.seedFile})
			return fmt.Errorf("failed to seed database: %w", err)
		}
		logger.Info("Seeding complete", map[string]interface{}{
			"habitats":  summary.Habitats,
			"trainers":  summary.Trainers,
			"reviews":   summary.Reviews,
			"sightings": summary.Sightings,
		})
	}

	return nil
}

func rollback(db *gorm.DB, logger logging.Logger) error {
	logger.Warn("Rolling back review constraints...", nil)
	if err := migration.RollbackReviewConstraints(db, logger); err != nil {
		return fmt.Errorf("failed to roll back review constraints: %w", err)
	}
	return nil
}
