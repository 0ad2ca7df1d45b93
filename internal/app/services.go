package app

import (
	"fmt"

	"github.com/yungbote/maturity-backend/internal/modules/maturity"
	"github.com/yungbote/maturity-backend/internal/observability"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"github.com/yungbote/maturity-backend/internal/services"
)

type Services struct {
	Cache    *services.ResponseCache
	Analysis services.AnalysisService
}

func wireServices(log *logger.Logger, metrics *observability.Metrics, repos Repos) (Services, error) {
	log.Info("Wiring services...")
	themes, err := maturity.DefaultThemeCatalog(log)
	if err != nil {
		return Services{}, fmt.Errorf("load theme catalog: %w", err)
	}
	cache := services.NewResponseCache(repos.Responses, log, metrics)
	return Services{
		Cache:    cache,
		Analysis: services.NewAnalysisService(cache, themes, log, metrics),
	}, nil
}
