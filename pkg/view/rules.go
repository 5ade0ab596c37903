package view

// Rules lists, for one origin kind, which edges may be followed from each
// kind reached while rendering it. A kind missing from the table renders
// its own fields only.
type Rules map[Kind][]string

// originRules is keyed by the kind of the record passed to Serialize
var originRules = map[Kind]Rules{
	KindRegion: {
		KindRegion: {"habitats"},
	},
	KindBiome: {
		KindBiome: {"trainers"},
	},
	KindHabitat: {
		KindHabitat:  {"region", "reviews", "sightings"},
		KindReview:   {"trainer"},
		KindSighting: {"trainer"},
		KindTrainer:  {"biome"},
	},
	KindTrainer: {
		KindTrainer: {"biome", "reviews", "sightings"},
	},
	KindReview: {
		KindReview:  {"habitat", "trainer"},
		KindHabitat: {"region"},
		KindTrainer: {"biome"},
	},
	KindSighting: {
		KindSighting: {"habitat", "trainer"},
		KindHabitat:  {"region"},
		KindTrainer:  {"biome"},
	},
}

// RulesFor returns a copy of the traversal rules used when origin is the
// root of a view
func RulesFor(origin Kind) Rules {
	out := make(Rules, len(originRules[origin]))
	for kind, edges := range originRules[origin] {
		out[kind] = append([]string(nil), edges...)
	}
	return out
}

func (r Rules) allows(kind Kind, edge string) bool {
	for _, name := range r[kind] {
		if name == edge {
			return true
		}
	}
	return false
}
