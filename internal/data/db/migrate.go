package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&survey.Document{},
	)
}
