// Package seed loads the region and biome catalog and optional YAML
// fixtures into the store.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/database/repository"
	"github.com/latoulicious/adventour/pkg/logging"
)

// Summary counts the rows a seeding run created
type Summary struct {
	Regions   int
	Biomes    int
	Habitats  int
	Trainers  int
	Reviews   int
	Sightings int
}

// EnsureCatalog creates every known region and biome that is missing.
// Existing rows are left alone, so it is safe to run on every start.
func EnsureCatalog(ctx context.Context, store *repository.Store) (Summary, error) {
	var summary Summary

	err := store.Transaction(ctx, func(tx *repository.Store) error {
		for _, name := range models.RegionNames() {
			_, err := tx.Regions.GetByName(ctx, name)
			if err == nil {
				continue
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}

			region, err := models.NewRegion(name)
			if err != nil {
				return err
			}
			if err := tx.Regions.Create(ctx, region); err != nil {
				return err
			}
			summary.Regions++
		}

		for _, name := range models.BiomeNames() {
			_, err := tx.Biomes.GetByName(ctx, name)
			if err == nil {
				continue
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}

			biome, err := models.NewBiome(name)
			if err != nil {
				return err
			}
			if err := tx.Biomes.Create(ctx, biome); err != nil {
				return err
			}
			summary.Biomes++
		}
		return nil
	})

	return summary, err
}

// Run seeds the catalog and every record in fixture in one transaction.
// Any failure leaves the database as it was; reporting it is left to the
// caller.
func Run(ctx context.Context, store *repository.Store, fixture *Fixture, logger logging.Logger) (Summary, error) {
	var summary Summary

	err := store.Transaction(ctx, func(tx *repository.Store) error {
		catalog, err := EnsureCatalog(ctx, tx)
		if err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		summary = catalog

		habitats := make(map[string]uint, len(fixture.Habitats))
		for _, h := range fixture.Habitats {
			var regionID *uint
			if h.Region != "" {
				region, err := tx.Regions.GetByName(ctx, h.Region)
				if err != nil {
					return fmt.Errorf("habitat %q: region %q: %w", h.Name, h.Region, err)
				}
				regionID = &region.ID
			}

			habitat, err := models.NewHabitat(h.Name, h.Image, regionID)
			if err != nil {
				return fmt.Errorf("habitat %q: %w", h.Name, err)
			}
			if err := tx.Habitats.Create(ctx, habitat); err != nil {
				return fmt.Errorf("habitat %q: %w", h.Name, err)
			}
			habitats[habitat.Name] = habitat.ID
			summary.Habitats++
		}

		trainers := make(map[string]uint, len(fixture.Trainers))
		for _, tr := range fixture.Trainers {
			var biomeID *uint
			if tr.Biome != "" {
				biome, err := tx.Biomes.GetByName(ctx, tr.Biome)
				if err != nil {
					return fmt.Errorf("trainer %q: biome %q: %w", tr.Name, tr.Biome, err)
				}
				biomeID = &biome.ID
			}

			trainer, err := models.NewTrainer(tr.Name, tr.Age, tr.Image, biomeID)
			if err != nil {
				return fmt.Errorf("trainer %q: %w", tr.Name, err)
			}
			if err := tx.Trainers.Register(ctx, trainer, tr.Password); err != nil {
				return fmt.Errorf("trainer %q: %w", tr.Name, err)
			}
			trainers[trainer.Name] = trainer.ID
			summary.Trainers++
		}

		for i, r := range fixture.Reviews {
			habitatID, trainerID, err := owners(ctx, tx, habitats, trainers, r.Habitat, r.Trainer)
			if err != nil {
				return fmt.Errorf("review %d: %w", i, err)
			}
			review, err := models.NewReview(r.Content, r.Danger, r.Rating, habitatID, trainerID)
			if err != nil {
				return fmt.Errorf("review %d: %w", i, err)
			}
			if err := tx.Reviews.Create(ctx, review); err != nil {
				return fmt.Errorf("review %d: %w", i, err)
			}
			summary.Reviews++
		}

		for i, s := range fixture.Sightings {
			habitatID, trainerID, err := owners(ctx, tx, habitats, trainers, s.Habitat, s.Trainer)
			if err != nil {
				return fmt.Errorf("sighting %d: %w", i, err)
			}
			sighting, err := models.NewSighting(s.Name, s.Blurb, s.Image, habitatID, trainerID)
			if err != nil {
				return fmt.Errorf("sighting %d: %w", i, err)
			}
			if err := tx.Sightings.Create(ctx, sighting); err != nil {
				return fmt.Errorf("sighting %d: %w", i, err)
			}
			summary.Sightings++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	logger.Info("Seeding completed", map[string]interface{}{
		"regions":   summary.Regions,
		"biomes":    summary.Biomes,
		"habitats":  summary.Habitats,
		"trainers":  summary.Trainers,
		"reviews":   summary.Reviews,
		"sightings": summary.Sightings,
	})
	return summary, nil
}

// owners resolves habitat and trainer names, preferring records created in
// this run over ones already stored
func owners(ctx context.Context, tx *repository.Store, habitats, trainers map[string]uint, habitat, trainer string) (uint, uint, error) {
	habitatID, ok := habitats[habitat]
	if !ok {
		found, err := tx.Habitats.GetByName(ctx, habitat)
		if err != nil {
			return 0, 0, fmt.Errorf("habitat %q: %w", habitat, err)
		}
		habitatID = found.ID
	}

	trainerID, ok := trainers[trainer]
	if !ok {
		found, err := tx.Trainers.GetByName(ctx, trainer)
		if err != nil {
			return 0, 0, fmt.Errorf("trainer %q: %w", trainer, err)
		}
		trainerID = found.ID
	}

	return habitatID, trainerID, nil
}
