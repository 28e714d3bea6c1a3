package migration

import (
	"chroma/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.IdentityModel{},
		&models.SessionModel{},
		&models.QuotaStateModel{},
		&models.UsageEventModel{},
	}
}
