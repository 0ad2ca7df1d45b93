package app

import (
	httpapi "github.com/yungbote/maturity-backend/internal/http"
	"github.com/yungbote/maturity-backend/internal/observability"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

func routerConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers) httpapi.RouterConfig {
	return httpapi.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       cfg.ServiceName,
		TracingEnabled:    cfg.TracingEnabled,
		AllowedOrigins:    cfg.AllowedOrigins,
		AnalysisHandler:   handlers.Analysis,
		HealthHandler:     handlers.Health,
		CacheResetEnabled: cfg.CacheResetEnabled,
	}
}
