package model

import (
	"time"

	"sekolah_backend/internals/constants"
	karyawan "sekolah_backend/internals/features/school/karyawan/model"
	orangTua "sekolah_backend/internals/features/school/orang_tua/model"
	siswa "sekolah_backend/internals/features/school/siswa/model"
)

// UserModel merepresentasikan tabel tb_user (akun login).
// Kolom siswa_id/ortu_id/karyawan_id hanya ditulis lewat Bind(RoleBinding).
type UserModel struct {
	UserID   uint           `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username string         `gorm:"column:username;type:varchar(100);not null;uniqueIndex:uq_tb_user_username" json:"username"`
	Password string         `gorm:"column:password;type:varchar(100);not null" json:"-"`
	Role     constants.Role `gorm:"column:role;type:varchar(20);not null;index" json:"role"`

	SiswaID    *uint `gorm:"column:siswa_id;index" json:"siswa_id"`
	OrtuID     *uint `gorm:"column:ortu_id;index" json:"ortu_id"`
	KaryawanID *uint `gorm:"column:karyawan_id;index" json:"karyawan_id"`

	// Profil ikut terhapus kalau barisnya dihapus (akun tidak bisa berdiri tanpa profil)
	Siswa    *siswa.SiswaModel       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"siswa,omitempty"`
	Ortu     *orangTua.OrangTuaModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"orang_tua,omitempty"`
	Karyawan *karyawan.KaryawanModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"karyawan,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "tb_user"
}

// Binding membaca ulang role + referensi profil dari baris yang tersimpan.
func (u UserModel) Binding() (RoleBinding, error) {
	return NewRoleBinding(u.Role, u.SiswaID, u.OrtuID, u.KaryawanID)
}

// Bind menulis role + tepat satu referensi profil (sisanya NULL).
func (u *UserModel) Bind(b RoleBinding) {
	u.Role = b.Role()
	u.SiswaID = b.SiswaID()
	u.OrtuID = b.OrtuID()
	u.KaryawanID = b.KaryawanID()
	u.Siswa, u.Ortu, u.Karyawan = nil, nil, nil
}

// DisplayName dari profil yang ter-preload; admin/kepsek pakai username.
func (u UserModel) DisplayName() string {
	switch u.Role {
	case constants.RoleSiswa:
		if u.Siswa != nil {
			return u.Siswa.Nama
		}
	case constants.RoleOrangTua:
		if u.Ortu != nil {
			return u.Ortu.DisplayName()
		}
	case constants.RoleGuru:
		if u.Karyawan != nil {
			return u.Karyawan.Nama
		}
	default:
		return u.Username
	}
	return ""
}
