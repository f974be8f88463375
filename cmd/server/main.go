package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"snowrent/internal/auth"
	"snowrent/internal/clock"
	"snowrent/internal/config"
	"snowrent/internal/equipment"
	"snowrent/internal/infrastructure/database"
	"snowrent/internal/infrastructure/logger"
	"snowrent/internal/intake"
	"snowrent/internal/jobs"
	"snowrent/internal/notifier"
	"snowrent/internal/pricing"
	"snowrent/internal/reservation"
	"snowrent/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, dialect, err := database.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected", zap.String("driver", cfg.Database.Driver))

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, db, dialect)
	cancelMigrate()
	if err != nil {
		zapLogger.Fatal("migrating database", zap.Error(err))
	}

	table, err := pricing.Load(cfg.Pricing.TablePath)
	if err != nil {
		zapLogger.Fatal("loading price table", zap.Error(err))
	}

	notify, err := notifier.New(cfg.Notification, zapLogger)
	if err != nil {
		zapLogger.Fatal("configuring notifications", zap.Error(err))
	}

	clk := clock.NewSystemClock()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, clk)

	authCtrl := auth.NewModule(db, tokens, zapLogger)
	equipmentCtrl := equipment.NewModule(db, dialect, zapLogger)
	reservationModule := reservation.NewModule(db, dialect, clk, cfg.Reservation, zapLogger)
	intakeCtrl := intake.NewModule(db, table, notify, clk, zapLogger)

	scheduler := jobs.NewScheduler(zapLogger)
	completion := jobs.NewCompletionJob(reservationModule.Service, clk, zapLogger, time.Minute)
	if err := scheduler.Add("complete_ended_reservations", cfg.Jobs.CompletionSchedule, completion); err != nil {
		zapLogger.Fatal("scheduling completion job", zap.Error(err))
	}
	scheduler.Start()

	router := server.NewRouter(cfg.Server.FrontendURL, server.Modules{
		Auth:         authCtrl,
		Equipment:    equipmentCtrl,
		Reservations: reservationModule.Controller,
		Intake:       intakeCtrl,
		RequireAuth:  auth.Middleware(tokens, zapLogger),
	}, clk, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, shutdownTimeout); err != nil {
		zapLogger.Error("server stopped with error", zap.Error(err))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	scheduler.Stop(stopCtx)

	zapLogger.Info("server stopped gracefully")
}
