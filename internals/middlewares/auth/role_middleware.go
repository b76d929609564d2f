package auth

import (
	"sekolah_backend/internals/constants"
	helper "sekolah_backend/internals/helpers"
	helperAuth "sekolah_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

// allow membungkus pengecekan identity; harus dipasang setelah AuthMiddleware.
func allow(message string, ok func(helperAuth.Identity) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := helperAuth.IdentityFrom(c)
		if id == nil {
			return helper.NewAppError(helper.KindMalformedToken, constants.MsgMalformedToken)
		}
		if !ok(*id) {
			return helper.Forbidden(message)
		}
		return c.Next()
	}
}

func OnlyRoles(customMessage string, roles ...constants.Role) fiber.Handler {
	if customMessage == "" {
		customMessage = "Akses ditolak"
	}
	return allow(customMessage, func(id helperAuth.Identity) bool { return id.HasRole(roles...) })
}

func AdminOnly() fiber.Handler {
	return allow(constants.MsgAdminOnly, helperAuth.Identity.IsAdmin)
}
