package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/maturity-backend/internal/data/repos/surveys"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type Repos struct {
	Responses surveys.ResponseRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Responses: surveys.NewResponseRepo(db, log),
	}
}
