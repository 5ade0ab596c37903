package models

// Region and biome names are closed sets. The maps are never written after
// package initialisation.
var (
	regionNames = []string{
		"Kanto", "Johto", "Hoenn", "Sinnoh", "Unova", "Kalos", "Alola", "Galar",
		"Paldea", "Orre", "Ultra Space", "Kitakami", "Almia", "Oblivia", "Lental",
		"Uncharted",
	}

	biomeNames = []string{
		"Coastal", "Polar", "Taiga", "Mires", "Forest (conif.)", "Forest (decid.)",
		"Forest (tropical rain)", "Forest (temperate rain)", "Grasslands",
		"Shrublands", "Desert", "Savanna", "Wetland", "River and Stream", "Lake",
		"Intertidal", "Reef", "Sea", "Ocean", "Deep Ocean", "Cavern", "Mountain",
		"Ruins", "City", NoPreferenceBiome,
	}

	knownRegions = toSet(regionNames)
	knownBiomes  = toSet(biomeNames)
)

// NoPreferenceBiome is the biome a trainer picks when they have no favourite.
const NoPreferenceBiome = "No Preference"

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// IsKnownRegion reports whether name is one of the recognised regions
func IsKnownRegion(name string) bool {
	_, ok := knownRegions[name]
	return ok
}

// IsKnownBiome reports whether name is one of the recognised biomes
func IsKnownBiome(name string) bool {
	_, ok := knownBiomes[name]
	return ok
}

// RegionNames returns the recognised region names in display order
func RegionNames() []string {
	return append([]string(nil), regionNames...)
}

// BiomeNames returns the recognised biome names in display order
func BiomeNames() []string {
	return append([]string(nil), biomeNames...)
}
