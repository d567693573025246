package routes

import (
	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/v1/handlers"
	"audioscribe/internal/api/v1/services"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("", transcriptionHandler.Upload)
		transcriptions.GET("", transcriptionHandler.List)
		transcriptions.POST("/retry", transcriptionHandler.RetryAll)
		transcriptions.GET("/:id", transcriptionHandler.Get)
		transcriptions.DELETE("/:id", transcriptionHandler.Delete)
		transcriptions.POST("/:id/retry", transcriptionHandler.Retry)
	}
}

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
}
