package api

import (
	"errors"
	"net/http"
	"strconv"

	"kennedy-digital-arts/backend/internal/models"
	"kennedy-digital-arts/backend/internal/service"
	"kennedy-digital-arts/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ArtworkHandler handles gallery submissions and simulated minting.
type ArtworkHandler struct {
	artworks *service.ArtworkService
	tokens   *service.TokenService
	logger   *logger.Logger
}

// NewArtworkHandler creates a new artwork handler.
func NewArtworkHandler(artworks *service.ArtworkService, tokens *service.TokenService, logger *logger.Logger) *ArtworkHandler {
	return &ArtworkHandler{artworks: artworks, tokens: tokens, logger: logger}
}

// CreateArtwork stores a new gallery submission for the authenticated user.
func (h *ArtworkHandler) CreateArtwork(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	artwork, err := h.artworks.CreateArtwork(&req, userID.(uint))
	if err != nil {
		h.logger.Error("Failed to create artwork", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create artwork"})
		return
	}

	c.JSON(http.StatusCreated, artwork)
}

// ListArtworks returns the gallery, newest first.
func (h *ArtworkHandler) ListArtworks(c *gin.Context) {
	artworks, err := h.artworks.ListArtworks()
	if err != nil {
		h.logger.Error("Failed to list artworks", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve artworks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": artworks})
}

// GetArtwork returns a single artwork with its token, if minted.
func (h *ArtworkHandler) GetArtwork(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	artwork, err := h.artworks.GetArtwork(id)
	if err != nil {
		if errors.Is(err, service.ErrArtworkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
			return
		}
		h.logger.Error("Failed to get artwork", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve artwork"})
		return
	}

	response := gin.H{"artwork": artwork}
	if token, err := h.tokens.GetTokenByArtwork(id); err == nil {
		response["token"] = token
	}
	c.JSON(http.StatusOK, response)
}

// MintArtwork simulates minting an artwork as an NFT. The resulting token
// carries placeholder chain identifiers only.
func (h *ArtworkHandler) MintArtwork(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	token, err := h.tokens.MintArtwork(id, userID.(uint))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArtworkNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		case errors.Is(err, service.ErrArtworkAlreadyMinted):
			c.JSON(http.StatusConflict, gin.H{"error": "Artwork has already been minted"})
		default:
			h.logger.Error("Failed to mint artwork", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mint artwork"})
		}
		return
	}

	c.JSON(http.StatusCreated, token)
}

// ListMyTokens returns the authenticated user's minted tokens.
func (h *ArtworkHandler) ListMyTokens(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	tokens, err := h.tokens.ListTokensByOwner(userID.(uint))
	if err != nil {
		h.logger.Error("Failed to list tokens", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tokens"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// DeleteArtwork removes one of the authenticated user's artworks.
func (h *ArtworkHandler) DeleteArtwork(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.artworks.DeleteArtwork(id, userID.(uint)); err != nil {
		if errors.Is(err, service.ErrArtworkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
			return
		}
		h.logger.Error("Failed to delete artwork", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete artwork"})
		return
	}

	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}
