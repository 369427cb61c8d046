package api

import (
	"encoding/base64"
	"net/http"

	"kennedy-digital-arts/backend/internal/registry"
	"kennedy-digital-arts/backend/internal/service"
	"kennedy-digital-arts/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SpeechHandler serves one-shot synthesis over REST. Clients that want live
// word-boundary events use the websocket hub instead; this endpoint returns
// the audio plus the full highlight schedule up front.
type SpeechHandler struct {
	speech     *service.SpeechService
	characters *registry.Registry
	logger     *logger.Logger
}

// NewSpeechHandler creates a new speech handler.
func NewSpeechHandler(speech *service.SpeechService, characters *registry.Registry, logger *logger.Logger) *SpeechHandler {
	return &SpeechHandler{speech: speech, characters: characters, logger: logger}
}

// SynthesizeRequest asks for a character to speak a line.
type SynthesizeRequest struct {
	Character string `json:"character" binding:"required"`
	Text      string `json:"text" binding:"required"`
}

// Synthesize returns base64 audio and the word highlight schedule.
func (h *SpeechHandler) Synthesize(c *gin.Context) {
	var req SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	character, err := h.characters.Get(req.Character)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Character not found"})
		return
	}

	audio, err := h.speech.Synthesize(c.Request.Context(), req.Text, character.VoiceID)
	if err != nil {
		h.logger.Error("Speech synthesis failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to synthesize speech"})
		return
	}

	timings := h.speech.WordTimings(req.Text, audio)

	c.JSON(http.StatusOK, gin.H{
		"audio":        base64.StdEncoding.EncodeToString(audio.Data),
		"content_type": audio.ContentType,
		"duration_ms":  audio.Duration.Milliseconds(),
		"timings":      timings,
	})
}
