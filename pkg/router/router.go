package router

import (
	"time"

	"kennedy-digital-arts/backend/internal/api"
	"kennedy-digital-arts/backend/internal/ws"
	"kennedy-digital-arts/backend/pkg/config"
	"kennedy-digital-arts/backend/pkg/di"
	"kennedy-digital-arts/backend/pkg/errors"
	"kennedy-digital-arts/backend/pkg/jwt"
	"kennedy-digital-arts/backend/pkg/logger"
	"kennedy-digital-arts/backend/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// Track server start time for uptime calculations
var startTime = time.Now()

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Hub       *ws.Hub
	Config    *config.Config
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	// Use the container's logger
	logger.SetGlobal(container.Logger)

	cfg := container.Config

	// Configure Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	engine := gin.New()

	// Use the logger middleware first to capture all requests
	engine.Use(logger.Middleware(container.Logger))

	// Attach request IDs before anything that logs
	engine.Use(middleware.RequestIDMiddleware())

	// Add custom error handler middleware
	engine.Use(errors.ErrorHandler())

	// Add custom recovery middleware with structured logging instead of default
	engine.Use(errors.RecoveryWithLogger())

	// Create rate limiter with default options
	rateLimiter := middleware.NewRateLimiter(container.Logger)

	// Apply rate limiting to all routes
	engine.Use(rateLimiter.Middleware())

	// Initialize WebSocket hub
	hub := ws.NewHub(
		container.Registry,
		container.ChatService,
		container.SpeechService,
		container.Logger,
	)

	// Start the hub
	go hub.Run()

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Hub:       hub,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	// Add CORS middleware
	r.Engine.Use(corsMiddleware())

	// Create JWT auth middleware
	jwtAuth := middleware.JWTAuthMiddleware(r.Container.JWTService, r.Logger)

	authHandler := api.NewAuthHandler(r.Container.UserService, r.Container.JWTService, r.Logger)
	characterHandler := api.NewCharacterHandler(r.Container.Registry)
	chatHandler := api.NewChatHandler(r.Container.ChatService, r.Logger)
	artworkHandler := api.NewArtworkHandler(r.Container.ArtworkService, r.Container.TokenService, r.Logger)
	speechHandler := api.NewSpeechHandler(r.Container.SpeechService, r.Container.Registry, r.Logger)
	userController := api.NewUserController(r.Container.DB)

	// Register rich health endpoints
	r.setupHealthRoutes()

	// API version 1 routes
	v1 := r.Engine.Group("/api/v1")

	// Public routes (no auth required)
	publicRoutes := v1.Group("/")
	{
		// Auth routes
		authRoutes := publicRoutes.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", jwtAuth, authHandler.Me)
		}

		// The persona catalogue and gallery are browsable without login
		publicRoutes.GET("/characters", characterHandler.ListCharacters)
		publicRoutes.GET("/characters/:id", characterHandler.GetCharacter)
		publicRoutes.GET("/artworks", artworkHandler.ListArtworks)
		publicRoutes.GET("/artworks/:id", artworkHandler.GetArtwork)
	}

	// Protected routes (require authentication)
	protectedRoutes := v1.Group("/")
	protectedRoutes.Use(jwtAuth)
	{
		// User management routes (admin only)
		adminRoutes := protectedRoutes.Group("/admin")
		adminRoutes.Use(middleware.RequireRole(jwt.RoleAdmin))
		{
			adminRoutes.PUT("/users/:id/role", authHandler.UpdateUserRole)
		}

		// Chat routes
		chatRoutes := protectedRoutes.Group("/chat")
		{
			chatRoutes.POST("/messages", chatHandler.SendMessage)
			chatRoutes.GET("/sessions/:sessionId/messages", chatHandler.GetSessionMessages)
		}

		// Artwork submission and minting
		protectedRoutes.POST("/artworks", artworkHandler.CreateArtwork)
		protectedRoutes.DELETE("/artworks/:id", artworkHandler.DeleteArtwork)
		protectedRoutes.POST("/artworks/:id/mint",
			middleware.RequirePermission(jwt.PermissionMintArtwork),
			artworkHandler.MintArtwork,
		)
		protectedRoutes.GET("/tokens", artworkHandler.ListMyTokens)

		// One-shot speech synthesis
		protectedRoutes.POST("/speech/synthesize", speechHandler.Synthesize)

		// User preferences
		protectedRoutes.GET("/preferences", userController.GetUserPreferences)
		protectedRoutes.PUT("/preferences", userController.SetUserPreferences)
	}

	// WebSocket route
	r.Engine.GET("/ws", func(c *gin.Context) {
		ws.ServeWs(r.Hub, c)
	})
}

// Enhance CORS middleware to explicitly allow WebSocket-specific headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		if origin != "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, X-CSRF-Token, Authorization, Origin, Upgrade, Connection, Cache-Control")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Upgrade, Connection")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
