package controllers

import (
	"MedicAid/handlers"
	"MedicAid/middlewares"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: no session required
	router.POST("/auth/login", ac.Handler.Login)
	router.POST("/auth/logout", ac.Handler.Logout)
	router.POST("/auth/refresh-session", ac.Handler.RefreshSession)

	// Protected routes: require a valid session cookie
	authGroup := router.Group("/").Use(middlewares.SessionAuthMiddleware())
	{
		authGroup.GET("/patient", ac.Handler.GetPatient)
	}
}
