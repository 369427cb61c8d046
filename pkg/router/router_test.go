package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(corsMiddleware())
	r.GET("/api/v1/characters", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"characters": []string{}})
	})
	return r
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	r := newCORSRouter()

	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/characters", nil)
	req.Header.Set("Origin", "https://digital-arts.example")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://digital-arts.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Upgrade")
}

func TestCORSWildcardWithoutOrigin(t *testing.T) {
	r := newCORSRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/characters", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
