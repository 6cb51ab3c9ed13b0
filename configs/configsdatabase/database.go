package configsdatabase

import (
	"time"

	"citalink.app/configs"
	"citalink.app/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres connection and verifies it with a ping. The
// returned *gorm.DB is the single storage handle for the process; it is passed
// down to repositories explicitly, never held as package state.
func Connect(cfg *configs.Config) (*gorm.DB, error) {
	gormLogLevel := logger.Warn
	if !cfg.IsProduction() {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:  logger.Default.LogMode(gormLogLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		configslog.Log.Error("Database connection failed", zap.Error(err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		configslog.Log.Error("Database ping failed", zap.Error(err))
		return nil, err
	}

	configslog.SLog.Infof("Database connection established: %s:%d/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	return db, nil
}

// Close releases the underlying connection pool on shutdown.
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Could not get underlying sql.DB for close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Database close failed", zap.Error(err))
		return
	}
	configslog.SLog.Info("Database connection closed")
}
