package middlewares

import (
	"time"

	"sekolah_backend/internals/configs"
	helper "sekolah_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func newLimiter(max int, exp time.Duration, msg string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: exp,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, msg)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter(cfg configs.RateLimitConfig) fiber.Handler {
	max, exp := cfg.Max, cfg.Expiration
	if max <= 0 {
		max = 100
	}
	if exp <= 0 {
		exp = time.Minute
	}
	return newLimiter(max, exp, "Terlalu banyak permintaan. Silakan coba lagi nanti.")
}

// Rate limiter untuk login. Bukan lockout akun: kunci per IP dan pulih sendiri.
func LoginRateLimiter() fiber.Handler {
	return newLimiter(10, time.Minute, "Terlalu banyak percobaan login. Coba beberapa saat lagi.")
}
