package migrations

import (
	"citalink.app/configs/configslog"
	"citalink.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateContactsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating contacts table...")
	if err := db.AutoMigrate(&models.Contact{}); err != nil {
		configslog.Log.Error("Failed to migrate contacts table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Contacts table migrated successfully")
	return nil
}
