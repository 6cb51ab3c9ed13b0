package migrations

import (
	"citalink.app/configs/configslog"
	"citalink.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateAppointmentsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating appointments table...")
	if err := db.AutoMigrate(&models.Appointment{}); err != nil {
		configslog.Log.Error("Failed to migrate appointments table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Appointments table migrated successfully")
	return nil
}
