package auth

import (
	"context"
	"strings"

	"sekolah_backend/internals/constants"
	helper "sekolah_backend/internals/helpers"
	helperAuth "sekolah_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier diimplementasikan oleh auth/service.TokenService.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*helperAuth.Identity, error)
}

/* ======== Extractor ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	fields := strings.Fields(auth)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", helper.NewAppError(helper.KindMalformedToken, constants.MsgMalformedToken)
	}
	tok := strings.Trim(fields[1], "\"'")
	if tok == "" {
		return "", helper.NewAppError(helper.KindMalformedToken, constants.MsgMalformedToken)
	}
	return tok, nil
}

// AuthMiddleware: wajib Bearer token yang valid; identitas disimpan di Locals.
func AuthMiddleware(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := extractBearerToken(c)
		if err != nil {
			return err
		}
		id, err := v.Verify(c.UserContext(), raw)
		if err != nil {
			return err
		}
		helperAuth.SetIdentity(c, id)
		return c.Next()
	}
}
