package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kennedy-digital-arts/backend/internal/models"
	"kennedy-digital-arts/backend/pkg/config"
	"kennedy-digital-arts/backend/pkg/di"
	"kennedy-digital-arts/backend/pkg/logger"
	"kennedy-digital-arts/backend/pkg/router"
	"kennedy-digital-arts/backend/shared/observability"
)

func main() {
	// Load configuration (reads .env if present)
	cfg := config.New()

	// Initialize structured logger
	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format != "text"

	log := logger.New(logConfig)
	logger.SetGlobal(log)

	log.Info("Starting application", "version", os.Getenv("APP_VERSION"))

	// Tracing and metrics
	shutdownTracing := observability.SetupTracing("digital-arts-backend")
	defer shutdownTracing()
	observability.SetupPrometheusMetrics()

	// Initialize database
	db, err := config.NewDB()
	if err != nil {
		log.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserPreference{},
		&models.Character{},
		&models.ChatMessage{},
		&models.Artwork{},
		&models.Token{},
		&models.Secret{},
	); err != nil {
		log.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}

	// Create indexes for better query performance
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_chat_messages_char_session ON chat_messages(character_id, session_id)").Error; err != nil {
		log.LogError(err, "Failed to create message index", "index", "idx_chat_messages_char_session")
	}

	// Initialize dependency injection container
	container, err := di.New(db, &di.Options{LoggerConfig: &logConfig})
	if err != nil {
		log.LogError(err, "Failed to initialize dependency container")
		os.Exit(1)
	}

	// Background health checks
	container.Health.Start()

	// Initialize and setup router
	r := router.New(container)
	r.SetupRoutes()

	// Add OpenAPI validation if schema file is available
	schemaPath := os.Getenv("OPENAPI_SCHEMA_PATH")
	if schemaPath == "" {
		schemaPath = "api/openapi.yaml"
	}
	r.AddOpenAPIValidation(schemaPath)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r.Engine,
	}

	// Start the server in a goroutine
	go func() {
		log.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogError(err, "Server failed to start")
			os.Exit(1)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal
	<-quit
	log.Info("Shutting down server...")

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the server
	if err := srv.Shutdown(ctx); err != nil {
		log.LogError(err, "Server forced to shutdown")
	}

	log.Info("Server exited gracefully")
}
