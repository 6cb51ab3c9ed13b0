package main

import (
	"flag"
	"os"

	"citalink.app/configs"
	"citalink.app/configs/configsdatabase"
	"citalink.app/configs/configslog"
	"citalink.app/database"

	"go.uber.org/zap"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "run database migrations")
	seedFlag := flag.Bool("seed", false, "run database seeders")
	flag.Parse()

	cfg, err := configs.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	configslog.InitLogger(cfg.AppEnv, cfg.LogLevel)
	defer configslog.SyncLogger()

	db, err := configsdatabase.Connect(cfg)
	if err != nil {
		configslog.Log.Fatal("Database connection failed", zap.Error(err))
	}
	defer configsdatabase.Close(db)

	if err := database.Initialize(db, *migrateFlag, *seedFlag); err != nil {
		configslog.Log.Fatal("Database initialization failed", zap.Error(err))
	}

	configslog.SLog.Info("Database initialization completed")
}
