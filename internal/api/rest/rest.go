package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no prefix)
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		// Property endpoints
		api.GET("/properties", handler.ListProperties)
		api.POST("/properties", handler.CreateProperty)
		api.GET("/properties/:id", handler.GetProperty)
		api.PUT("/properties/:id", handler.UpdateProperty)
		api.DELETE("/properties/:id", handler.DeleteProperty)
		api.POST("/properties/:id/images", handler.AddPropertyImage)
		api.GET("/properties/owner/:ownerId", handler.ListPropertiesByOwner)

		// Owner endpoints
		api.GET("/owners/:ownerId", handler.GetOwner)
	}
}
