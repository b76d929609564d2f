package middlewares

import (
	"strings"

	"sekolah_backend/internals/configs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware: origin dari ALLOW_ORIGINS
func CorsMiddleware(cfg configs.AppConfig) fiber.Handler {
	origins := strings.Join(cfg.AllowOrigins, ", ")
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
	})
}
