package models_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func requireValidation(t *testing.T, err error, field string) *models.ValidationError {
	t.Helper()
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	assert.Equal(t, field, ve.Field)
	assert.NotEmpty(t, ve.Message)
	return ve
}

func TestNewRegion(t *testing.T) {
	for _, name := range models.RegionNames() {
		region, err := models.NewRegion(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, region.Name)
	}
	assert.Len(t, models.RegionNames(), 16)

	for _, name := range []string{"", "kanto", "Atlantis", "Kanto ", "Ultra-Space"} {
		_, err := models.NewRegion(name)
		requireValidation(t, err, "name")
	}
}

func TestRegionNamesIsACopy(t *testing.T) {
	names := models.RegionNames()
	names[0] = "Atlantis"
	assert.True(t, models.IsKnownRegion("Kanto"))
	assert.False(t, models.IsKnownRegion("Atlantis"))
}

func TestNewBiome(t *testing.T) {
	names := models.BiomeNames()
	assert.Len(t, names, 25)
	assert.Equal(t, models.NoPreferenceBiome, names[len(names)-1])

	for _, name := range names {
		_, err := models.NewBiome(name)
		require.NoError(t, err, name)
	}
	for _, name := range []string{"", "Volcano", "forest (conif.)"} {
		_, err := models.NewBiome(name)
		requireValidation(t, err, "name")
	}
}

func TestNewHabitat(t *testing.T) {
	tests := []struct {
		name    string
		habitat string
		image   string
		field   string
	}{
		{name: "valid", habitat: "Viridian Forest", image: "forest.png"},
		{name: "two characters", habitat: "Mt", image: "mt.png"},
		{name: "twenty five characters", habitat: strings.Repeat("a", 25), image: "a.png"},
		{name: "multibyte counted as characters", habitat: strings.Repeat("é", 25), image: "e.png"},
		{name: "empty name", habitat: "", image: "x.png", field: "name"},
		{name: "blank name", habitat: "   ", image: "x.png", field: "name"},
		{name: "one character", habitat: "A", image: "x.png", field: "name"},
		{name: "twenty six characters", habitat: strings.Repeat("a", 26), image: "x.png", field: "name"},
		{name: "padded one character", habitat: "  a  ", image: "x.png", field: "name"},
		{name: "padding not counted", habitat: " " + strings.Repeat("a", 25) + " ", image: "a.png"},
		{name: "missing image", habitat: "Cerulean Cave", image: "", field: "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habitat, err := models.NewHabitat(tt.habitat, tt.image, nil)
			if tt.field == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.habitat, habitat.Name)
				return
			}
			requireValidation(t, err, tt.field)
		})
	}
}

func TestNewTrainerAge(t *testing.T) {
	for _, age := range []int{-1, 0, 9} {
		_, err := models.NewTrainer("Ash", age, "", nil)
		requireValidation(t, err, "age")
	}
	for _, age := range []int{10, 11, 99} {
		trainer, err := models.NewTrainer("Ash", age, "", nil)
		require.NoError(t, err)
		assert.Equal(t, age, trainer.Age)
	}
}

func TestNewTrainerName(t *testing.T) {
	_, err := models.NewTrainer("", 12, "", nil)
	requireValidation(t, err, "name")
}

func TestTrainerSecret(t *testing.T) {
	trainer, err := models.NewTrainer("Misty", 12, "", nil)
	require.NoError(t, err)

	// the secret is mandatory before storage
	requireValidation(t, trainer.Validate(), "password")
	assert.False(t, trainer.Authenticate("hunter2"))

	require.NoError(t, trainer.SetSecretWithCost("hunter2", bcrypt.MinCost))
	assert.NoError(t, trainer.Validate())
	assert.True(t, trainer.Authenticate("hunter2"))
	assert.False(t, trainer.Authenticate("wrong"))
	assert.False(t, trainer.Authenticate(""))

	secret, err := trainer.Secret()
	assert.Empty(t, secret)
	var accessErr *models.AccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Equal(t, "password_hash", accessErr.Field)

	value, err := trainer.PasswordHash.Value()
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", value)
	assert.NotContains(t, trainer.PasswordHash.String(), "$2")
}

func TestTrainerSecretRejectsBadInput(t *testing.T) {
	trainer, err := models.NewTrainer("Brock", 15, "", nil)
	require.NoError(t, err)

	requireValidation(t, trainer.SetSecretWithCost("", bcrypt.MinCost), "password")
	requireValidation(t, trainer.SetSecretWithCost("abc", bcrypt.MinCost), "password")
	requireValidation(t, trainer.SetSecretWithCost(strings.Repeat("x", 73), bcrypt.MinCost), "password")
	assert.False(t, trainer.PasswordHash.IsSet())
}

func TestCredentialScan(t *testing.T) {
	var source models.Credential
	require.NoError(t, source.Set("onix-rocks", bcrypt.MinCost))
	stored, err := source.Value()
	require.NoError(t, err)

	var loaded models.Credential
	require.NoError(t, loaded.Scan([]byte(stored.(string))))
	assert.True(t, loaded.Verify("onix-rocks"))

	require.NoError(t, loaded.Scan(nil))
	assert.False(t, loaded.IsSet())
	assert.Error(t, loaded.Scan(42))
}

func TestNewReview(t *testing.T) {
	content := strings.Repeat("r", 50)

	_, err := models.NewReview(content, 3, 4, 1, 1)
	require.NoError(t, err)

	_, err = models.NewReview(strings.Repeat("r", 49), 3, 4, 1, 1)
	requireValidation(t, err, "content")

	_, err = models.NewReview(content, 0, 4, 1, 1)
	ve := requireValidation(t, err, "danger")
	assert.Contains(t, ve.Message, "observed danger")

	for _, danger := range []int{-1, 6} {
		_, err = models.NewReview(content, danger, 4, 1, 1)
		ve = requireValidation(t, err, "danger")
		assert.Contains(t, ve.Message, "between 1 and 5")
	}

	for _, rating := range []int{0, 6, -2} {
		_, err = models.NewReview(content, 3, rating, 1, 1)
		requireValidation(t, err, "rating")
	}

	_, err = models.NewReview(content, 3, 4, 0, 1)
	requireValidation(t, err, "habitat_id")

	_, err = models.NewReview(content, 3, 4, 1, 0)
	requireValidation(t, err, "trainer_id")
}

func TestNewSighting(t *testing.T) {
	_, err := models.NewSighting("Mew", strings.Repeat("b", 200), "mew.png", 1, 1)
	require.NoError(t, err)

	_, err = models.NewSighting("Mew", strings.Repeat("b", 201), "mew.png", 1, 1)
	requireValidation(t, err, "blurb")

	_, err = models.NewSighting("", "", "mew.png", 1, 1)
	ve := requireValidation(t, err, "name")
	assert.Contains(t, ve.Message, models.UnknownSubject)

	_, err = models.NewSighting("Mew", "", "", 1, 1)
	requireValidation(t, err, "image")
}
