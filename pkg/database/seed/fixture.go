package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is a YAML document describing records to seed. Records refer to
// each other by name.
type Fixture struct {
	Habitats  []HabitatFixture  `yaml:"habitats"`
	Trainers  []TrainerFixture  `yaml:"trainers"`
	Reviews   []ReviewFixture   `yaml:"reviews"`
	Sightings []SightingFixture `yaml:"sightings"`
}

type HabitatFixture struct {
	Name   string `yaml:"name"`
	Image  string `yaml:"image"`
	Region string `yaml:"region"`
}

type TrainerFixture struct {
	Name     string `yaml:"name"`
	Age      int    `yaml:"age"`
	Image    string `yaml:"image"`
	Biome    string `yaml:"biome"`
	Password string `yaml:"password"`
}

type ReviewFixture struct {
	Habitat string `yaml:"habitat"`
	Trainer string `yaml:"trainer"`
	Content string `yaml:"content"`
	Danger  int    `yaml:"danger"`
	Rating  int    `yaml:"rating"`
}

type SightingFixture struct {
	Habitat string `yaml:"habitat"`
	Trainer string `yaml:"trainer"`
	Name    string `yaml:"name"`
	Blurb   string `yaml:"blurb"`
	Image   string `yaml:"image"`
}

// LoadFile reads and parses a fixture file
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a fixture document. Unknown keys are rejected and an empty
// document is an empty fixture.
func Parse(data []byte) (*Fixture, error) {
	var fixture Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixture); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &fixture, nil
}
