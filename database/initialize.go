package database

import (
	"citalink.app/configs/configslog"
	"citalink.app/database/migrations"
	"citalink.app/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs migrations and seeders inside one transaction; either
// everything lands or nothing does.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Neither -migrate nor -seed given, nothing to do")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("Running migrations...")
			if err := RunMigrationsInOrder(tx); err != nil {
				return err
			}
			configslog.SLog.Info("Migrations finished")
		}

		if seed {
			configslog.SLog.Info("Running seeders...")
			if err := CheckAndRunSeeders(tx); err != nil {
				return err
			}
			configslog.SLog.Info("Seeders finished")
		}

		return nil
	})
}

// RunMigrationsInOrder migrates each table. Users go first: every other
// table references user ids.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"users", migrations.MigrateUsersTable},
		{"appointments", migrations.MigrateAppointmentsTable},
		{"contacts", migrations.MigrateContactsTable},
		{"feedback", migrations.MigrateFeedbackTable},
		{"reviews", migrations.MigrateReviewsTable},
		{"profile_visits", migrations.MigrateProfileVisitsTable},
	}

	for _, step := range steps {
		if err := step.run(db); err != nil {
			configslog.Log.Error("Migration step failed", zap.String("table", step.name), zap.Error(err))
			return err
		}
	}

	configslog.SLog.Info("All migrations completed")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	if err := seeders.SeedAdminUser(db); err != nil {
		configslog.Log.Error("Admin user seed failed", zap.Error(err))
		return err
	}
	return nil
}
