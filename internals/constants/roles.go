package constants

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleKepsek   Role = "kepsek"
	RoleGuru     Role = "guru"
	RoleOrangTua Role = "orang_tua"
	RoleSiswa    Role = "siswa"
)

var AllRoles = []Role{RoleAdmin, RoleKepsek, RoleGuru, RoleOrangTua, RoleSiswa}

// alias bahasa Inggris yang diterima dari klien lama
var roleAliases = map[string]Role{
	"principal": RoleKepsek,
	"teacher":   RoleGuru,
	"parent":    RoleOrangTua,
	"student":   RoleSiswa,
}

// ParseRole menormalkan role (termasuk alias) ke nilai yang disimpan.
func ParseRole(s string) (Role, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range AllRoles {
		if string(r) == s {
			return r, true
		}
	}
	r, ok := roleAliases[s]
	return r, ok
}

func RoleNames() []string {
	out := make([]string, 0, len(AllRoles))
	for _, r := range AllRoles {
		out = append(out, string(r))
	}
	return out
}

// Pesan error auth (ditampilkan apa adanya ke klien)
const (
	MsgInvalidCredentials = "Username atau password salah"
	MsgMalformedToken     = "Format token tidak valid"
	MsgTokenExpired       = "Sesi telah kadaluarsa"
	MsgTokenInvalid       = "Token tidak valid"
	MsgAccountNotFound    = "Akun tidak terdaftar"
	MsgAdminOnly          = "Akses terbatas untuk admin"
)
