package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pastebin/kvpaste/internal/config"
	"pastebin/kvpaste/internal/handler/middleware"
	"pastebin/kvpaste/internal/metrics"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	pasteHandler *PasteHandler,
	adminHandler *AdminHandler,
	healthHandler *HealthHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	// Liveness
	r.GET("/", healthHandler.Root)
	r.GET("/healthz", healthHandler.Healthz)

	if m != nil && cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		api.GET("/main", healthHandler.Root)
		api.POST("/verify", adminHandler.Verify)
		api.POST("/upload", pasteHandler.Upload)
		api.POST("/update", pasteHandler.Update)
		api.GET("/list", pasteHandler.List)
		api.POST("/delete", pasteHandler.Delete)
	}

	// Raw content
	r.GET("/raw/:id", pasteHandler.Raw)
	r.GET("/paste/:id", pasteHandler.Raw)

	return r
}
