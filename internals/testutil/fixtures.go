package testutil

import (
	"testing"

	"sekolah_backend/internals/constants"
	masterBiaya "sekolah_backend/internals/features/finance/master_biaya/model"
	tagihan "sekolah_backend/internals/features/finance/tagihan/model"
	karyawan "sekolah_backend/internals/features/school/karyawan/model"
	kelas "sekolah_backend/internals/features/school/kelas/model"
	orangTua "sekolah_backend/internals/features/school/orang_tua/model"
	siswa "sekolah_backend/internals/features/school/siswa/model"
	user "sekolah_backend/internals/features/users/user/model"
	helper "sekolah_backend/internals/helpers"
	helperAuth "sekolah_backend/internals/helpers/auth"
	"sekolah_backend/internals/helpers/dbtime"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedKaryawan(t *testing.T, db *gorm.DB, nama string) *karyawan.KaryawanModel {
	t.Helper()
	m := &karyawan.KaryawanModel{
		Nama:     nama,
		Posisi:   "Guru",
		TglLahir: dbtime.MustDate("1985-04-12"),
		JK:       constants.JKLaki,
		Alamat:   "Jl. Melati 1",
		NoHP:     "081234567890",
		Gaji:     decimal.RequireFromString("3500000"),
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func SeedOrangTua(t *testing.T, db *gorm.DB, ayah, ibu string) *orangTua.OrangTuaModel {
	t.Helper()
	m := &orangTua.OrangTuaModel{NamaAyah: ayah, NamaIbu: ibu, NoHP: "081298765432"}
	require.NoError(t, db.Create(m).Error)
	return m
}

func SeedKelas(t *testing.T, db *gorm.DB, nama string, karyawanID uint) *kelas.KelasModel {
	t.Helper()
	m := &kelas.KelasModel{NamaKelas: nama, Kapasitas: 30, TahunAjaran: "2024/2025", KaryawanID: karyawanID}
	require.NoError(t, db.Omit("Karyawan").Create(m).Error)
	return m
}

func SeedSiswa(t *testing.T, db *gorm.DB, nama string, kelasID, ortuID uint) *siswa.SiswaModel {
	t.Helper()
	m := &siswa.SiswaModel{
		Nama:     nama,
		TglLahir: dbtime.MustDate("2012-08-17"),
		JK:       constants.JKPerempuan,
		Alamat:   "Jl. Kenanga 2",
		KelasID:  kelasID,
		OrtuID:   ortuID,
	}
	require.NoError(t, db.Omit("Kelas", "Ortu").Create(m).Error)
	return m
}

func SeedMasterBiaya(t *testing.T, db *gorm.DB, nama, jenis, jumlah string) *masterBiaya.MasterBiayaModel {
	t.Helper()
	m := &masterBiaya.MasterBiayaModel{NamaBiaya: nama, JenisBiaya: jenis, Jumlah: decimal.RequireFromString(jumlah)}
	require.NoError(t, db.Omit("Karyawan").Create(m).Error)
	return m
}

// SeedTagihan menulis baris langsung, tanpa billing lifecycle.
func SeedTagihan(t *testing.T, db *gorm.DB, siswaID, biayaID uint, jumlah, status string) *tagihan.TagihanModel {
	t.Helper()
	m := &tagihan.TagihanModel{
		SiswaID:       siswaID,
		BiayaID:       biayaID,
		Jumlah:        decimal.RequireFromString(jumlah),
		TglJatuhTempo: dbtime.MustDate("2025-07-10"),
		Status:        status,
	}
	require.NoError(t, db.Omit("Siswa", "Biaya").Create(m).Error)
	return m
}

// SeedSchool: satu guru, satu kelas, satu orang tua, satu siswa.
func SeedSchool(t *testing.T, db *gorm.DB) *siswa.SiswaModel {
	t.Helper()
	guru := SeedKaryawan(t, db, "Budi Santoso")
	k := SeedKelas(t, db, "7A", guru.KaryawanID)
	ortu := SeedOrangTua(t, db, "Ahmad", "Siti")
	return SeedSiswa(t, db, "Aisyah", k.KelasID, ortu.OrtuID)
}

// SeedUser: password di-hash dengan MinCost supaya test cepat.
func SeedUser(t *testing.T, db *gorm.DB, username, password string, role constants.Role, siswaID, ortuID, karyawanID *uint) *user.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	m := &user.UserModel{
		Username:   username,
		Password:   string(hash),
		Role:       role,
		SiswaID:    siswaID,
		OrtuID:     ortuID,
		KaryawanID: karyawanID,
	}
	require.NoError(t, db.Omit("Siswa", "Ortu", "Karyawan").Create(m).Error)
	return m
}

// NewApp: fiber app dengan ErrorHandler yang sama seperti produksi.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
}

// AsIdentity menggantikan AuthMiddleware di test controller.
func AsIdentity(id helperAuth.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		helperAuth.SetIdentity(c, &id)
		return c.Next()
	}
}

// NewAPI: app + grup /api yang sudah "login" sebagai id.
func NewAPI(id helperAuth.Identity) (*fiber.App, fiber.Router) {
	app := NewApp()
	return app, app.Group("/api", AsIdentity(id))
}

func Guru() helperAuth.Identity {
	return helperAuth.Identity{UserID: 2, Username: "guru", DisplayName: "guru", Role: constants.RoleGuru}
}

func Admin() helperAuth.Identity {
	return helperAuth.Identity{UserID: 1, Username: "admin", DisplayName: "admin", Role: constants.RoleAdmin}
}
