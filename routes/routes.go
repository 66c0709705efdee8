package routes

import (
	"net/http"

	"MedicAid/cache"
	"MedicAid/config"
	"MedicAid/controllers"
	"MedicAid/geocode"
	"MedicAid/handlers"
	"MedicAid/llm"
	"MedicAid/middlewares"
	"MedicAid/repositories"
	"MedicAid/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://medicaid.example.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware; uploads fan out into model calls, so
	// keep the ceiling modest.
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 10,
		Burst:             20,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize collaborators, repositories, services, and handlers
	modelClient := llm.NewClient()
	geocoder := geocode.NewClient()

	recordRepo := repositories.NewPatientRecordRepository(cache)

	patientService := services.NewPatientService(recordRepo)
	analysisService := services.NewAnalysisService(recordRepo, modelClient)
	chatService := services.NewChatService(modelClient)
	specialistService := services.NewSpecialistService(modelClient, geocoder)

	authHandler := handlers.NewAuthHandler(patientService)
	reportHandler := handlers.NewReportHandler(analysisService)
	trendHandler := handlers.NewTrendHandler(patientService)
	chatHandler := handlers.NewChatHandler(chatService, patientService)
	specialistHandler := handlers.NewSpecialistHandler(specialistService)

	// Register routes
	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRecordRoutes(router, reportHandler, trendHandler, chatHandler, specialistHandler)

	controllers.SetupRootRoute(router)

	return router
}
