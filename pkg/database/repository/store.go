package repository

import (
	"context"

	"github.com/latoulicious/adventour/pkg/logging"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Store groups the repositories over one database handle
type Store struct {
	db      *gorm.DB
	factory logging.LoggerFactory
	cost    int

	Regions   *RegionRepository
	Biomes    *BiomeRepository
	Habitats  *HabitatRepository
	Trainers  *TrainerRepository
	Reviews   *ReviewRepository
	Sightings *SightingRepository
	Logs      *LogRepository
}

// Option configures a Store
type Option func(*Store)

// WithBcryptCost sets the cost used when trainers register or change secrets
func WithBcryptCost(cost int) Option {
	return func(s *Store) {
		s.cost = cost
	}
}

// WithLoggerFactory sets where repository loggers come from
func WithLoggerFactory(factory logging.LoggerFactory) Option {
	return func(s *Store) {
		s.factory = factory
	}
}

// NewStore creates a store with every repository bound to db
func NewStore(db *gorm.DB, opts ...Option) *Store {
	s := &Store{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	if s.factory == nil {
		s.factory = nopFactory{}
	}
	return s.bind(db, s.factory)
}

func (s *Store) bind(db *gorm.DB, factory logging.LoggerFactory) *Store {
	bound := &Store{db: db, factory: factory, cost: s.cost}
	bound.Regions = NewRegionRepository(db, factory.CreateStoreLogger("regions"))
	bound.Biomes = NewBiomeRepository(db, factory.CreateStoreLogger("biomes"))
	bound.Habitats = NewHabitatRepository(db, factory.CreateStoreLogger("habitats"))
	bound.Trainers = NewTrainerRepository(db, factory.CreateStoreLogger("trainers"), s.cost)
	bound.Reviews = NewReviewRepository(db, factory.CreateStoreLogger("reviews"))
	bound.Sightings = NewSightingRepository(db, factory.CreateStoreLogger("sightings"))
	bound.Logs = NewLogRepository(db)
	return bound
}

// Transaction runs fn with a store bound to a single transaction. Any
// error returned by fn rolls back every write made through it. Log lines
// written through the bound store are held until the outcome is known, so
// a rollback never reports records as created or deleted.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	buffer := logging.NewBuffer()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.bind(tx, buffer.Factory(s.factory)))
	})
	if err != nil {
		buffer.Rollback()
		return err
	}
	buffer.Commit()
	return nil
}

// DB returns the underlying handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

type nopFactory struct{}

func (nopFactory) CreateLogger(component string) logging.Logger {
	return logging.NewNopLogger().WithComponent(component)
}

func (nopFactory) CreateStoreLogger(entity string) logging.Logger {
	return logging.NewStoreLogger(logging.NewNopLogger(), entity)
}
