package routes

import (
	"context"
	"time"

	"sekolah_backend/internals/configs"
	database "sekolah_backend/internals/databases"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BaseRoutes: root, health check, dan file bukti (driver local).
func BaseRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, startTime time.Time) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Sekolah backend berjalan 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK
		if err := database.Ping(ctx, db); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    cfg.App.Env,
		})
	})

	if cfg.Storage.Driver == "local" {
		app.Static(cfg.Storage.PublicPrefix, cfg.Storage.LocalDir, fiber.Static{
			Browse:        false,
			CacheDuration: 10 * time.Minute,
			MaxAge:        3600,
		})
	}
}
