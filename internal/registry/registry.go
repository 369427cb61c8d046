// Package registry holds the static character persona lookup. Personas are
// loaded once at startup and never mutated afterwards.
package registry

import (
	"errors"
	"fmt"

	"kennedy-digital-arts/backend/internal/models"

	"gorm.io/gorm"
)

// ErrCharacterNotFound is returned for unknown slugs or ids.
var ErrCharacterNotFound = errors.New("character not found")

// Registry is a read-only lookup from character slug to persona.
type Registry struct {
	bySlug  map[string]models.Character
	byID    map[uint]models.Character
	ordered []models.Character
}

// Load seeds the characters table on first boot and builds the in-memory
// registry from it.
func Load(db *gorm.DB) (*Registry, error) {
	var count int64
	if err := db.Model(&models.Character{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("counting characters: %w", err)
	}

	if count == 0 {
		seed := defaultCharacters()
		for i := range seed {
			seed[i].Slug = models.CharacterSlug(seed[i].Name)
		}
		if err := db.Create(&seed).Error; err != nil {
			return nil, fmt.Errorf("seeding characters: %w", err)
		}
	}

	var characters []models.Character
	if err := db.Order("id").Find(&characters).Error; err != nil {
		return nil, fmt.Errorf("loading characters: %w", err)
	}

	return FromCharacters(characters), nil
}

// FromCharacters builds a registry from an explicit persona list (used in
// tests and tools that run without a database).
func FromCharacters(characters []models.Character) *Registry {
	r := &Registry{
		bySlug:  make(map[string]models.Character, len(characters)),
		byID:    make(map[uint]models.Character, len(characters)),
		ordered: characters,
	}
	for _, c := range characters {
		if c.Slug == "" {
			c.Slug = models.CharacterSlug(c.Name)
		}
		r.bySlug[c.Slug] = c
		r.byID[c.ID] = c
	}
	return r
}

// Get looks up a persona by slug.
func (r *Registry) Get(slug string) (models.Character, error) {
	c, ok := r.bySlug[slug]
	if !ok {
		return models.Character{}, ErrCharacterNotFound
	}
	return c, nil
}

// GetByID looks up a persona by database id.
func (r *Registry) GetByID(id uint) (models.Character, error) {
	c, ok := r.byID[id]
	if !ok {
		return models.Character{}, ErrCharacterNotFound
	}
	return c, nil
}

// List returns all personas in seed order. The slice is a copy; callers
// cannot mutate the registry through it.
func (r *Registry) List() []models.Character {
	out := make([]models.Character, len(r.ordered))
	copy(out, r.ordered)
	return out
}
