package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler dipasang di fiber.Config; semua error handler bermuara ke sini.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ae *AppError
	if errors.As(err, &ae) {
		if ae.Kind == KindUnexpected {
			log.Printf("[ERROR] reqid=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), ae.Err)
		}
		return JsonAppError(c, ae)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= 500 {
			log.Printf("[ERROR] reqid=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), fe)
		}
		return JsonError(c, fe.Code, fe.Message)
	}

	log.Printf("[ERROR] reqid=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "")
}
