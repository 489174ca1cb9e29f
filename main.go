// File: /main.go
package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"inkwell-api/config"
	"inkwell-api/database"
	"inkwell-api/logger"
	"inkwell-api/middleware"
	"inkwell-api/routes"
	"inkwell-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if cfg.Env != "production" {
		if err := database.SeedData(db); err != nil {
			log.Printf("Warning: Failed to seed database: %v", err)
		}
	}

	// Object storage client for avatar uploads
	storage, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		log.Fatal("Failed to create object storage client:", err)
	}

	// Email service for verification codes
	emailService := services.NewEmailService(cfg)

	// Set Gin mode based on environment
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(routes.SetupCORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(300, 50))

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService, storage)

	// Start server
	log.Printf("Starting Inkwell API server on port %s", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
