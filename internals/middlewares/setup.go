package middlewares

import (
	"sekolah_backend/internals/configs"
	"sekolah_backend/internals/middlewares/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
)

// SetupMiddlewares: middleware global, recover paling luar.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(RequestMiddleware(cfg.App.ReqTimeout))
	app.Use(logger.LoggerMiddleware(cfg.App.TimeZone))
	app.Use(CorsMiddleware(cfg.App))
	app.Use(GlobalRateLimiter(cfg.RateLimit))
}
