package migrations

import (
	"citalink.app/configs/configslog"
	"citalink.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateProfileVisitsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating profile_visits table...")
	if err := db.AutoMigrate(&models.ProfileVisit{}); err != nil {
		configslog.Log.Error("Failed to migrate profile_visits table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Profile visits table migrated successfully")
	return nil
}
