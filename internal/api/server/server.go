package server

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"audioscribe/internal/api/middleware"
	"audioscribe/internal/api/v1/handlers"
	v1routes "audioscribe/internal/api/v1/routes"
	"audioscribe/internal/api/v1/services"
	"audioscribe/internal/app/engine"
	"audioscribe/internal/app/storage"
	"audioscribe/internal/config"

	_ "audioscribe/docs" // Swagger docs
)

// Server represents the API server
type Server struct {
	cfg        config.Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg config.Config,
	transcriptionService services.TranscriptionService,
	loader *engine.Loader,
	store storage.BlobStore,
	registry *prometheus.Registry,
	version string,
	logger *zap.Logger,
) *Server {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	systemHandler := handlers.NewSystemHandler(cfg, loader, version)
	router.GET("/health", systemHandler.Health)
	router.GET("/info", systemHandler.Info)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	serviceContainer := &v1routes.ServiceContainer{
		TranscriptionService: transcriptionService,
	}

	api := router.Group("/api")
	{
		v1 := api.Group("/v1")
		v1routes.RegisterRoutes(v1, serviceContainer)
	}

	// Audio files from the local store are served directly; minio serves
	// its own URLs.
	if local, ok := store.(*storage.LocalStore); ok {
		router.Static("/uploads", local.Dir())
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		cfg:        cfg,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start starts the API server
func (s *Server) Start() error {
	s.logger.Info("starting API server",
		zap.String("host", s.cfg.Server.Host),
		zap.String("port", s.cfg.Server.Port),
		zap.String("environment", s.cfg.Server.Environment),
	)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	s.logger.Info("API server started", zap.String("address", s.httpServer.Addr))
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
