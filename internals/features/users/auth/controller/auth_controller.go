package controller

import (
	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/users/auth/service"
	helper "sekolah_backend/internals/helpers"
	helperAuth "sekolah_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Tokens *service.TokenService
}

func NewAuthController(tokens *service.TokenService) *AuthController {
	return &AuthController{Tokens: tokens}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyError(err)
	}
	res, err := ctl.Tokens.Issue(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    "Login berhasil",
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"data":       res.User,
	})
}

// GET /api/auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	id := helperAuth.IdentityFrom(c)
	if id == nil {
		return helper.NewAppError(helper.KindMalformedToken, constants.MsgMalformedToken)
	}
	return helper.JsonOK(c, "Data pengguna", id)
}

// POST /api/auth/logout: token tidak disimpan di server, klien cukup membuangnya.
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	return helper.JsonDeleted(c, "Logout berhasil. Hapus token di client.")
}
