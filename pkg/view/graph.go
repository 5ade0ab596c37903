package view

import (
	"fmt"

	"github.com/latoulicious/adventour/pkg/database/models"
)

// Kind names an entity type in the relationship graph
type Kind string

const (
	KindRegion   Kind = "region"
	KindBiome    Kind = "biome"
	KindHabitat  Kind = "habitat"
	KindTrainer  Kind = "trainer"
	KindReview   Kind = "review"
	KindSighting Kind = "sighting"
)

// Edge is a named relationship from one kind to another
type Edge struct {
	Name string
	To   Kind
	Many bool
}

var graph = map[Kind][]Edge{
	KindRegion: {
		{Name: "habitats", To: KindHabitat, Many: true},
	},
	KindBiome: {
		{Name: "trainers", To: KindTrainer, Many: true},
	},
	KindHabitat: {
		{Name: "region", To: KindRegion},
		{Name: "reviews", To: KindReview, Many: true},
		{Name: "sightings", To: KindSighting, Many: true},
	},
	KindTrainer: {
		{Name: "biome", To: KindBiome},
		{Name: "reviews", To: KindReview, Many: true},
		{Name: "sightings", To: KindSighting, Many: true},
	},
	KindReview: {
		{Name: "habitat", To: KindHabitat},
		{Name: "trainer", To: KindTrainer},
	},
	KindSighting: {
		{Name: "habitat", To: KindHabitat},
		{Name: "trainer", To: KindTrainer},
	},
}

// Edges returns the relationships leaving kind
func Edges(kind Kind) []Edge {
	out := make([]Edge, len(graph[kind]))
	copy(out, graph[kind])
	return out
}

// node is one record in the graph. Edges are resolved on demand so cyclic
// pointer structures are never walked eagerly.
type node struct {
	kind   Kind
	key    interface{}
	fields map[string]interface{}
	link   func(edge string) interface{}
}

type ref struct {
	kind Kind
	id   uint
}

// identity keys saved records by id and unsaved ones by address
func identity(kind Kind, id uint, ptr interface{}) interface{} {
	if id == 0 {
		return ptr
	}
	return ref{kind: kind, id: id}
}

func optionalID(id *uint) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func pointers[T any](items []T) []interface{} {
	out := make([]interface{}, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// describe wraps a model value or pointer as a node. A nil pointer yields a
// nil node.
func describe(v interface{}) (*node, error) {
	switch e := v.(type) {
	case nil:
		return nil, nil
	case models.Region:
		return describe(&e)
	case models.Biome:
		return describe(&e)
	case models.Habitat:
		return describe(&e)
	case models.Trainer:
		return describe(&e)
	case models.Review:
		return describe(&e)
	case models.Sighting:
		return describe(&e)

	case *models.Region:
		if e == nil {
			return nil, nil
		}
		return &node{
			kind:   KindRegion,
			key:    identity(KindRegion, e.ID, e),
			fields: map[string]interface{}{"id": e.ID, "name": e.Name},
			link: func(edge string) interface{} {
				if edge == "habitats" {
					return pointers(e.Habitats)
				}
				return nil
			},
		}, nil

	case *models.Biome:
		if e == nil {
			return nil, nil
		}
		return &node{
			kind:   KindBiome,
			key:    identity(KindBiome, e.ID, e),
			fields: map[string]interface{}{"id": e.ID, "name": e.Name},
			link: func(edge string) interface{} {
				if edge == "trainers" {
					return pointers(e.Trainers)
				}
				return nil
			},
		}, nil

	case *models.Habitat:
		if e == nil {
			return nil, nil
		}
		return &node{
			kind: KindHabitat,
			key:  identity(KindHabitat, e.ID, e),
			fields: map[string]interface{}{
				"id":        e.ID,
				"name":      e.Name,
				"image":     e.Image,
				"region_id": optionalID(e.RegionID),
			},
			link: func(edge string) interface{} {
				switch edge {
				case "region":
					return e.Region
				case "reviews":
					return pointers(e.Reviews)
				case "sightings":
					return pointers(e.Sightings)
				}
				return nil
			},
		}, nil

	case *models.Trainer:
		if e == nil {
			return nil, nil
		}
		// the credential is never part of a view
		return &node{
			kind: KindTrainer,
			key:  identity(KindTrainer, e.ID, e),
			fields: map[string]interface{}{
				"id":       e.ID,
				"name":     e.Name,
				"age":      e.Age,
				"image":    e.Image,
				"biome_id": optionalID(e.BiomeID),
			},
			link: func(edge string) interface{} {
				switch edge {
				case "biome":
					return e.Biome
				case "reviews":
					return pointers(e.Reviews)
				case "sightings":
					return pointers(e.Sightings)
				}
				return nil
			},
		}, nil

	case *models.Review:
		if e == nil {
			return nil, nil
		}
		return &node{
			kind: KindReview,
			key:  identity(KindReview, e.ID, e),
			fields: map[string]interface{}{
				"id":         e.ID,
				"content":    e.Content,
				"danger":     e.Danger,
				"rating":     e.Rating,
				"habitat_id": e.HabitatID,
				"trainer_id": e.TrainerID,
			},
			link: func(edge string) interface{} {
				switch edge {
				case "habitat":
					return e.Habitat
				case "trainer":
					return e.Trainer
				}
				return nil
			},
		}, nil

	case *models.Sighting:
		if e == nil {
			return nil, nil
		}
		return &node{
			kind: KindSighting,
			key:  identity(KindSighting, e.ID, e),
			fields: map[string]interface{}{
				"id":         e.ID,
				"name":       e.Name,
				"blurb":      e.Blurb,
				"image":      e.Image,
				"habitat_id": e.HabitatID,
				"trainer_id": e.TrainerID,
			},
			link: func(edge string) interface{} {
				switch edge {
				case "habitat":
					return e.Habitat
				case "trainer":
					return e.Trainer
				}
				return nil
			},
		}, nil
	}

	return nil, fmt.Errorf("view: unsupported type %T", v)
}
