package app

import (
	"time"

	"github.com/yungbote/maturity-backend/internal/data/db"
	"github.com/yungbote/maturity-backend/internal/http/middleware"
	"github.com/yungbote/maturity-backend/internal/observability"
	"github.com/yungbote/maturity-backend/internal/platform/envutil"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type Config struct {
	Port            string
	LogMode         string
	Environment     string
	Version         string
	ServiceName     string
	ShutdownTimeout time.Duration

	DB db.Config

	AllowedOrigins    []string
	CacheResetEnabled bool
	TracingEnabled    bool
	WarmCache         bool
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:              envutil.String("PORT", "8000"),
		LogMode:           envutil.String("LOG_MODE", "development"),
		Environment:       envutil.String("APP_ENV", "development"),
		Version:           envutil.String("APP_VERSION", "dev"),
		ServiceName:       envutil.String("OTEL_SERVICE_NAME", observability.DefaultServiceName),
		ShutdownTimeout:   envutil.Duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		DB:                db.ConfigFromEnv(),
		AllowedOrigins:    envutil.List("CORS_ALLOWED_ORIGINS", middleware.DefaultAllowedOrigins),
		CacheResetEnabled: envutil.Bool("ADMIN_CACHE_RESET_ENABLED", false),
		TracingEnabled:    envutil.Bool("OTEL_ENABLED", false),
		WarmCache:         envutil.Bool("CACHE_WARM_ON_START", false),
	}
	if log != nil {
		log.Info("Configuration loaded",
			"port", cfg.Port,
			"db_driver", cfg.DB.Driver,
			"cache_reset_enabled", cfg.CacheResetEnabled,
			"tracing_enabled", cfg.TracingEnabled,
			"metrics_enabled", observability.Enabled(),
		)
	}
	return cfg
}
