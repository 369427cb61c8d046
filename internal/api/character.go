package api

import (
	"net/http"
	"strconv"

	"kennedy-digital-arts/backend/internal/registry"

	"github.com/gin-gonic/gin"
)

// CharacterHandler serves the static persona catalogue. Personas are seeded
// at startup and never change at runtime, so these endpoints are read-only.
type CharacterHandler struct {
	registry *registry.Registry
}

// NewCharacterHandler creates a new character handler.
func NewCharacterHandler(registry *registry.Registry) *CharacterHandler {
	return &CharacterHandler{registry: registry}
}

// ListCharacters returns every available persona.
func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"characters": h.registry.List()})
}

// GetCharacter returns one persona, looked up by slug or numeric ID.
func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	key := c.Param("id")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Character identifier is required"})
		return
	}

	if id, err := strconv.ParseUint(key, 10, 32); err == nil {
		character, err := h.registry.GetByID(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Character not found"})
			return
		}
		c.JSON(http.StatusOK, character)
		return
	}

	character, err := h.registry.Get(key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Character not found"})
		return
	}
	c.JSON(http.StatusOK, character)
}
