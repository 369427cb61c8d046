package registry

import (
	"testing"

	"kennedy-digital-arts/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterSlug(t *testing.T) {
	assert.Equal(t, "johnfkennedy", models.CharacterSlug("John F Kennedy"))
	assert.Equal(t, "susanbanthony", models.CharacterSlug("Susan B. Anthony"))
	assert.Equal(t, "martinlutherkingjr", models.CharacterSlug("Martin Luther King Jr."))
}

func TestRegistryLookups(t *testing.T) {
	seed := defaultCharacters()
	for i := range seed {
		seed[i].ID = uint(i + 1)
	}
	r := FromCharacters(seed)

	kennedy, err := r.Get("johnfkennedy")
	require.NoError(t, err)
	assert.Equal(t, "John F Kennedy", kennedy.Name)
	assert.Equal(t, "iP95p4xoKVk53GoZ742B", kennedy.VoiceID)
	assert.NotEmpty(t, kennedy.PromptTemplate)

	lincoln, err := r.GetByID(12)
	require.NoError(t, err)
	assert.Equal(t, "Abraham Lincoln", lincoln.Name)

	_, err = r.Get("napoleon")
	assert.ErrorIs(t, err, ErrCharacterNotFound)
}

func TestRegistryListIsACopy(t *testing.T) {
	r := FromCharacters(defaultCharacters())

	list := r.List()
	require.NotEmpty(t, list)
	list[0].Name = "mutated"

	again, err := r.Get(models.CharacterSlug("John F Kennedy"))
	require.NoError(t, err)
	assert.Equal(t, "John F Kennedy", again.Name, "registry must be immutable")
}

func TestEveryDefaultCharacterHasVoiceAndPrompt(t *testing.T) {
	for _, c := range defaultCharacters() {
		assert.NotEmpty(t, c.VoiceID, c.Name)
		assert.NotEmpty(t, c.PromptTemplate, c.Name)
		assert.NotEmpty(t, c.Role, c.Name)
	}
}
