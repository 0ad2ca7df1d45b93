package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/maturity-backend/internal/data/db"
	httpapi "github.com/yungbote/maturity-backend/internal/http"
	"github.com/yungbote/maturity-backend/internal/observability"
	"github.com/yungbote/maturity-backend/internal/platform/envutil"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	server       *httpapi.Server
	store        *db.Service
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})
	metrics := observability.Init(log)

	store, err := db.NewService(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init document store: %w", err)
	}
	// The store may be down at boot; requests then fail with 503 until it returns.
	if err := db.AutoMigrateAll(store.DB()); err != nil {
		log.Warn("document store automigrate failed", "error", err)
	}

	reposet := wireRepos(store.DB(), log)
	serviceset, err := wireServices(log, metrics, reposet)
	if err != nil {
		_ = store.Close()
		log.Sync()
		return nil, err
	}
	handlerset := wireHandlers(log, serviceset)
	server := httpapi.NewServer(routerConfig(log, cfg, metrics, handlerset))

	return &App{
		Log:          log,
		DB:           store.DB(),
		Router:       server.Engine,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		server:       server,
		store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

// Start optionally fills the response cache before traffic arrives. A failed
// warm-up is logged; requests retry the fill.
func (a *App) Start(ctx context.Context) {
	if a == nil || !a.Cfg.WarmCache {
		return
	}
	if _, err := a.Services.Cache.Load(ctx); err != nil {
		a.Log.Warn("cache warm-up failed", "error", err)
	}
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.server.Run(ctx, ":"+a.Cfg.Port, a.Cfg.ShutdownTimeout)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.Log != nil {
			a.Log.Warn("close document store failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
