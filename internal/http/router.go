package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/maturity-backend/internal/http/handlers"
	httpMW "github.com/yungbote/maturity-backend/internal/http/middleware"
	"github.com/yungbote/maturity-backend/internal/observability"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	AllowedOrigins []string

	AnalysisHandler *httpH.AnalysisHandler
	HealthHandler   *httpH.HealthHandler

	// CacheResetEnabled exposes POST /api/admin/cache/reset.
	CacheResetEnabled bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(httpMW.Tracing(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	// Metrics
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		if h := cfg.AnalysisHandler; h != nil {
			api.GET("/stats/global", h.GlobalStats)
			api.GET("/stats/by-group", h.StatsByGroup)
			api.GET("/correlations", h.Correlations)
			api.GET("/strengths-weaknesses", h.StrengthsWeaknesses)
			api.GET("/filters", h.FilterOptions)
			api.GET("/axes", h.Axes)

			if cfg.CacheResetEnabled {
				api.POST("/admin/cache/reset", h.ResetCache)
			}
		}
	}

	return r
}
