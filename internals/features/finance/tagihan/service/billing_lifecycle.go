package service

import (
	"fmt"

	"sekolah_backend/internals/constants"
	masterBiaya "sekolah_backend/internals/features/finance/master_biaya/model"
	pemasukan "sekolah_backend/internals/features/finance/pemasukan/model"
	"sekolah_backend/internals/features/finance/tagihan/model"
	helper "sekolah_backend/internals/helpers"
	"sekolah_backend/internals/helpers/dbtime"

	"gorm.io/gorm"
)

/* =========================================================
   Billing lifecycle: belum_lunas ⇄ lunas
========================================================= */

// Settlement: cara pembayaran yang dicatat di pemasukan saat tagihan jadi lunas.
type Settlement struct {
	Metode string
	Sumber string
}

// DefaultSettlement: pelunasan lewat admin.
var DefaultSettlement = Settlement{Metode: constants.DefaultMetodePembayaran, Sumber: constants.SumberOtomatis}

type Lifecycle struct {
	Today func() dbtime.Date
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{Today: dbtime.Today}
}

func (l *Lifecycle) today() dbtime.Date {
	if l != nil && l.Today != nil {
		return l.Today()
	}
	return dbtime.Today()
}

// Transition dijalankan di transaksi yang sama dengan penulisan tagihan.
// prevStatus "" berarti tagihan baru dibuat.
//   - bukan lunas → lunas: buat satu pemasukan
//   - lunas → belum_lunas: hapus pemasukan non-manual milik tagihan ini
func (l *Lifecycle) Transition(tx *gorm.DB, prevStatus string, t *model.TagihanModel, s Settlement) error {
	switch {
	case prevStatus != constants.StatusLunas && t.Status == constants.StatusLunas:
		return l.settle(tx, t, s)
	case prevStatus == constants.StatusLunas && t.Status != constants.StatusLunas:
		err := tx.Where("tagihan_id = ? AND sumber <> ?", t.TagihanID, constants.SumberManual).
			Delete(&pemasukan.PemasukanModel{}).Error
		return helper.MapWriteError(err)
	}
	return nil
}

func (l *Lifecycle) settle(tx *gorm.DB, t *model.TagihanModel, s Settlement) error {
	var mb masterBiaya.MasterBiayaModel
	if err := tx.First(&mb, t.BiayaID).Error; err != nil {
		return helper.NotFoundOr(err, "Master biaya tagihan tidak ditemukan")
	}
	ket := Keterangan(mb)
	income := pemasukan.PemasukanModel{
		TagihanID:        t.TagihanID,
		JumlahBayar:      t.Jumlah,
		TglBayar:         l.today(),
		MetodePembayaran: s.Metode,
		Keterangan:       &ket,
		Sumber:           s.Sumber,
	}
	return helper.MapWriteError(tx.Omit("Tagihan").Create(&income).Error)
}

// Keterangan pemasukan otomatis: "(<jenis_biaya>) <nama_biaya>"
func Keterangan(mb masterBiaya.MasterBiayaModel) string {
	return fmt.Sprintf("(%s) %s", mb.JenisBiaya, mb.NamaBiaya)
}
