package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authport "github.com/campuspoints/points-api/internal/domain/port/auth"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/domain/port/usecase"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/api/handler"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	adminHandler *handler.AdminHandler,
	tokens authport.TokenIssuer,
	users usecase.UserUseCase,
	logger coreport.Logger,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(middleware.RequireAuth(tokens, users, logger))
	{
		authed.GET("/users", userHandler.ListUsers)
		authed.GET("/users/me", userHandler.GetMe)
		authed.GET("/users/:userId", userHandler.GetUser)
		authed.GET("/users/:userId/transactions", userHandler.ListTransactions)
	}

	// Admin routes
	admin := authed.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/users/:userId/balance/add", adminHandler.AddBalance)
		admin.POST("/users/:userId/balance/subtract", adminHandler.SubtractBalance)
		admin.GET("/transactions", adminHandler.ListAllTransactions)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
