package database

import (
	"log"

	masterBiaya "sekolah_backend/internals/features/finance/master_biaya/model"
	pembayaran "sekolah_backend/internals/features/finance/payments/model"
	pemasukan "sekolah_backend/internals/features/finance/pemasukan/model"
	pengeluaran "sekolah_backend/internals/features/finance/pengeluaran/model"
	tagihan "sekolah_backend/internals/features/finance/tagihan/model"
	karyawan "sekolah_backend/internals/features/school/karyawan/model"
	kelas "sekolah_backend/internals/features/school/kelas/model"
	orangTua "sekolah_backend/internals/features/school/orang_tua/model"
	siswa "sekolah_backend/internals/features/school/siswa/model"
	user "sekolah_backend/internals/features/users/user/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Models: urutan mengikuti dependensi FK (referensi dulu).
func Models() []any {
	return []any{
		&karyawan.KaryawanModel{},
		&orangTua.OrangTuaModel{},
		&kelas.KelasModel{},
		&siswa.SiswaModel{},
		&user.UserModel{},
		&masterBiaya.MasterBiayaModel{},
		&tagihan.TagihanModel{},
		&pemasukan.PemasukanModel{},
		&pengeluaran.PengeluaranModel{},
		&pembayaran.PaymentGatewayEventModel{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	log.Println("[INFO] migrate ok")
	return nil
}
