package route

import (
	"sekolah_backend/internals/features/users/auth/controller"
	"sekolah_backend/internals/features/users/auth/service"

	"github.com/gofiber/fiber/v2"
)

// AuthRoutes: login publik (dengan limiter), me & logout butuh token.
func AuthRoutes(api fiber.Router, tokens *service.TokenService, authMw, loginLimiter fiber.Handler) {
	ctl := controller.NewAuthController(tokens)

	g := api.Group("/auth")
	g.Post("/login", loginLimiter, ctl.Login)
	g.Get("/me", authMw, ctl.Me)
	g.Post("/logout", authMw, ctl.Logout)
}
