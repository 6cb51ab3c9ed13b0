package configslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the structured logger, SLog its sugared twin. Both are initialized
// once at process start; packages use whichever reads better at the call site.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger configures the global logger pair. Production gets JSON output,
// everything else the development console encoder.
func InitLogger(env string, level string) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// No logger to report with yet.
		panic("logger init failed: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger flushes buffered entries; call via defer in main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
