package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"citalink.app/configs"
	"citalink.app/configs/configsdatabase"
	"citalink.app/configs/configslog"
	"citalink.app/repositories"
	"citalink.app/routes"
	"citalink.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const suspensionSweepInterval = 24 * time.Hour

func main() {
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

	userRepo := repositories.NewUserRepository(db)
	guard := services.NewReferentialGuard(userRepo)

	svcs := routes.Services{
		Users:         services.NewUserService(userRepo, guard),
		Appointments:  services.NewAppointmentService(repositories.NewAppointmentRepository(db), guard),
		Contacts:      services.NewContactService(repositories.NewContactRepository(db), guard),
		Feedback:      services.NewFeedbackService(repositories.NewFeedbackRepository(db), guard),
		Reviews:       services.NewReviewService(repositories.NewReviewRepository(db), guard),
		ProfileVisits: services.NewProfileVisitService(repositories.NewProfileVisitRepository(db), guard),
	}

	app := fiber.New(fiber.Config{
		AppName:      "citalink",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	routes.SetupRoutes(app, svcs)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go runSuspensionSweep(sweepCtx, svcs.Users)

	go func() {
		configslog.SLog.Infof("Listening on %s", cfg.ListenAddr)
		if err := app.Listen(cfg.ListenAddr); err != nil {
			configslog.Log.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("Shutting down...")
	stopSweep()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		configslog.Log.Error("Shutdown error", zap.Error(err))
	}
}

// runSuspensionSweep suspends accounts that have reached the strike
// threshold, once at startup and then daily.
func runSuspensionSweep(ctx context.Context, users services.IUserService) {
	sweep := func() {
		count, err := users.SuspendOverdueUsers(ctx)
		if err != nil {
			configslog.Log.Error("Suspension sweep failed", zap.Error(err))
			return
		}
		if count > 0 {
			configslog.SLog.Infof("Suspension sweep: %d account(s) suspended", count)
		}
	}

	sweep()
	ticker := time.NewTicker(suspensionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
