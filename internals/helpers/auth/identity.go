package helper

import (
	"strings"

	"sekolah_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
)

// Locals yang diisi middleware AuthMiddleware
const (
	LocIdentity = "identity"
	LocUserID   = "user_id"
	LocRole     = "role"
)

// Identity: akun yang sedang login (tanpa password).
type Identity struct {
	UserID      uint           `json:"user_id"`
	Username    string         `json:"username"`
	DisplayName string         `json:"nama_pengguna"`
	Role        constants.Role `json:"role"`
	SiswaID     *uint          `json:"siswa_id,omitempty"`
	OrtuID      *uint          `json:"ortu_id,omitempty"`
	KaryawanID  *uint          `json:"karyawan_id,omitempty"`
}

func (i Identity) IsAdmin() bool { return i.Role == constants.RoleAdmin }

func (i Identity) HasRole(roles ...constants.Role) bool {
	for _, r := range roles {
		if strings.EqualFold(string(i.Role), string(r)) {
			return true
		}
	}
	return false
}

func SetIdentity(c *fiber.Ctx, id *Identity) {
	c.Locals(LocIdentity, id)
	c.Locals(LocUserID, id.UserID)
	c.Locals(LocRole, string(id.Role))
}

// IdentityFrom: nil kalau route tidak lewat AuthMiddleware.
func IdentityFrom(c *fiber.Ctx) *Identity {
	if v, ok := c.Locals(LocIdentity).(*Identity); ok {
		return v
	}
	return nil
}
