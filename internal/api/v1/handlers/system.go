package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/app/engine"
	"audioscribe/internal/config"
)

// SystemHandler serves health and capability endpoints.
type SystemHandler struct {
	cfg     config.Config
	loader  *engine.Loader
	version string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(cfg config.Config, loader *engine.Loader, version string) *SystemHandler {
	return &SystemHandler{
		cfg:     cfg,
		loader:  loader,
		version: version,
	}
}

// Health handles GET /health
//
// @Summary Health check
// @Description Reports service liveness and whether the transcription model has been loaded. model_loaded false is not unhealthy; the model loads lazily on first use.
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is healthy"
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:      "healthy",
		ModelLoaded: h.loader.Loaded(),
	})
}

// Info handles GET /info
//
// @Summary Service capability descriptor
// @Description Returns static service information: engine, model variant, supported formats, size limits, and endpoint map
// @Tags system
// @Produce json
// @Success 200 {object} dto.InfoResponse "Service information"
// @Router /info [get]
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, dto.InfoResponse{
		Name:             "audioscribe",
		Version:          h.version,
		Description:      "Audio transcription service",
		Engine:           h.cfg.Engine.Kind,
		ModelVariant:     h.cfg.Engine.ModelVariant,
		SupportedFormats: h.cfg.Upload.AllowedFormats,
		MaxFileSize:      fmt.Sprintf("%dMB", h.cfg.Upload.MaxSizeMB),
		Endpoints: map[string]string{
			"health":         "/health",
			"info":           "/info",
			"metrics":        "/metrics",
			"transcriptions": "/api/v1/transcriptions",
			"documentation":  "/swagger/index.html",
		},
	})
}
