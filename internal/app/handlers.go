package app

import (
	httpH "github.com/yungbote/maturity-backend/internal/http/handlers"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type Handlers struct {
	Analysis *httpH.AnalysisHandler
	Health   *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Analysis: httpH.NewAnalysisHandler(services.Analysis),
		Health:   httpH.NewHealthHandler(),
	}
}
