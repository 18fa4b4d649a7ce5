package main

import (
	"github.com/gin-gonic/gin"

	campHandler "codecamp-backend/internal/domains/camp/handler"
	"codecamp-backend/internal/shared/middleware"
	"codecamp-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check + reloadconfig
		c.OperationsHandler.RegisterRoutes(v1)

		setupCampRoutes(v1, c)
	}

	return router
}

// ========================================
// CAMP / TALK / SPEAKER ROUTES
// ========================================
func setupCampRoutes(v1 *gin.RouterGroup, c *container.Container) {
	campHandler.RegisterRoutes(v1, c.CampHandler, c.TalkHandler, c.SpeakerHandler)
}
