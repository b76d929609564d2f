package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"sekolah_backend/internals/configs"
	database "sekolah_backend/internals/databases"
	paymentService "sekolah_backend/internals/features/finance/payments/service"
	"sekolah_backend/internals/features/finance/pengeluaran/scheduler"
	tagihanService "sekolah_backend/internals/features/finance/tagihan/service"
	authService "sekolah_backend/internals/features/users/auth/service"
	helper "sekolah_backend/internals/helpers"
	"sekolah_backend/internals/helpers/dbtime"
	helperStorage "sekolah_backend/internals/helpers/storage"
	middlewares "sekolah_backend/internals/middlewares"
	routes "sekolah_backend/internals/route"
	"sekolah_backend/internals/seeds"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("[ERROR] config: %v", err)
	}
	dbtime.SetDefaultLocation(cfg.App.Location())

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		BodyLimit:             cfg.App.BodyLimit,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})
	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		log.Fatalf("[ERROR] database: %v", err)
	}
	database.WarmUpQueries(db)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("[ERROR] migrate: %v", err)
	}
	if err := seeds.RunAllSeeds(context.Background(), db, cfg.Seed); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	blob, err := helperStorage.NewBlobService(cfg.Storage)
	if err != nil {
		log.Fatalf("[ERROR] storage: %v", err)
	}

	// ⏱ scheduler setelah DB siap
	var reaperCron *cron.Cron
	if cfg.Reaper.Enabled {
		reaperCron, err = scheduler.NewEvidenceReaper(db, blob, cfg.Reaper).Start(cfg.Reaper.Schedule)
		if err != nil {
			log.Fatalf("[ERROR] reaper: %v", err)
		}
	}

	lifecycle := tagihanService.NewLifecycle()
	snapClient := paymentService.NewSnapClient(cfg.Midtrans)
	if snapClient == nil {
		log.Println("[WARN] MIDTRANS_SERVER_KEY kosong, pembayaran online nonaktif")
	}

	routes.SetupRoutes(app, db, cfg, routes.Deps{
		Tokens:    authService.NewTokenService(db, cfg.Auth),
		Lifecycle: lifecycle,
		Payments:  paymentService.NewPaymentService(db, snapClient, cfg.Midtrans.ServerKey, lifecycle),
		Blob:      blob,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", cfg.App.Port)
		if err := app.Listen("0.0.0.0:" + cfg.App.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop cron, server, lalu pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] Shutting down...")

	if reaperCron != nil {
		<-reaperCron.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
