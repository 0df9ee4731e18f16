package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"menuboard/internal/caching"
	"menuboard/internal/handlers"
	"menuboard/internal/jobs/background"
	"menuboard/internal/middleware"
	"menuboard/internal/repositories"
	"menuboard/internal/services"
	"menuboard/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Admin secret for the hidden-URL admin panel. This is an obscurity
	// gate, not authentication.
	adminSecret := os.Getenv("ADMIN_SECRET")
	if adminSecret == "" {
		adminSecret = random.String(32)
		log.Printf("WARNING: Using generated admin secret: %s", adminSecret)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "menu-images"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}
	if err := storageSvc.EnsureBucket(context.Background()); err != nil {
		log.Printf("WARN: could not ensure image bucket %s: %v", minioBucket, err)
	}

	// Create repositories
	categoryRepo := repositories.NewCategoryRepo(pool)
	itemRepo := repositories.NewItemRepo(pool)
	ratingRepo := repositories.NewRatingRepo(pool)

	// Create cache and rate limiter
	menuCache := caching.NewMenuCache()
	rateLimiter := caching.NewRedisRateLimiter(redisAddr, redisPassword, redisDB)

	// Create services
	menuSvc := services.NewMenuService(categoryRepo, itemRepo, menuCache)
	workflowSvc := services.NewWorkflowService(menuSvc, storageSvc)
	ratingSvc := services.NewRatingService(ratingRepo, rateLimiter)

	// Create handlers
	menuHandlers := handlers.NewMenuHandlers(menuSvc)
	categoryHandlers := handlers.NewCategoryHandlers(menuSvc, workflowSvc)
	itemHandlers := handlers.NewItemHandlers(menuSvc, workflowSvc)
	ratingHandlers := handlers.NewRatingHandlers(ratingSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(menuSvc, storageSvc, minioBucket)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", func(c echo.Context) error {
		return handlers.ReadinessCheck(c, pool)
	})

	// Public routes
	e.GET("/menu", menuHandlers.GetMenu)
	e.GET("/menu/:id", menuHandlers.GetMenuCategory)
	e.POST("/ratings", ratingHandlers.Submit)

	// Admin routes behind the secret path segment
	admin := e.Group("/admin/:secret", middleware.AdminGate(middleware.SecretAuthorizer(adminSecret)))

	admin.GET("/categories", categoryHandlers.ListCategories)
	admin.POST("/categories", categoryHandlers.CreateCategory)
	admin.GET("/categories/next-order", categoryHandlers.NextCategoryOrder)
	admin.GET("/categories/:id", categoryHandlers.GetCategory)
	admin.PUT("/categories/:id", categoryHandlers.UpdateCategory)
	admin.DELETE("/categories/:id", categoryHandlers.DeleteCategory)

	admin.GET("/categories/:id/items/next-order", itemHandlers.NextItemOrder)
	admin.POST("/categories/:id/items", itemHandlers.CreateItem)
	admin.GET("/categories/:id/items/:itemId", itemHandlers.GetItem)
	admin.PUT("/categories/:id/items/:itemId", itemHandlers.UpdateItem)
	admin.DELETE("/categories/:id/items/:itemId", itemHandlers.DeleteItem)

	admin.GET("/ratings", ratingHandlers.ListRatings)
	admin.GET("/ratings/stats", ratingHandlers.RatingStats)
	admin.DELETE("/ratings/:ratingId", ratingHandlers.DeleteRating)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Menuboard server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
