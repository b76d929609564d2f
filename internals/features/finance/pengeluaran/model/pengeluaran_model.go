package model

import (
	"time"

	masterBiaya "sekolah_backend/internals/features/finance/master_biaya/model"
	user "sekolah_backend/internals/features/users/user/model"
	"sekolah_backend/internals/helpers/dbtime"

	"github.com/shopspring/decimal"
)

type PengeluaranModel struct {
	PengeluaranID uint `gorm:"column:pengeluaran_id;primaryKey;autoIncrement" json:"pengeluaran_id"`

	Deskripsi      string          `gorm:"column:deskripsi;type:text;not null" json:"deskripsi"`
	Jumlah         decimal.Decimal `gorm:"column:jumlah;type:numeric(12,2);not null" json:"jumlah"`
	TglPengeluaran dbtime.Date     `gorm:"column:tgl_pengeluaran;not null" json:"tgl_pengeluaran"`

	// key object storage; URL publik diisi controller
	BuktiPengeluaran *string `gorm:"column:bukti_pengeluaran;type:varchar(255);index" json:"bukti_pengeluaran"`
	BuktiURL         string  `gorm:"-" json:"bukti_url,omitempty"`

	// FK → tb_master_biaya (harus jenis pengeluaran)
	BiayaID uint                          `gorm:"column:biaya_id;not null;index" json:"biaya_id"`
	Biaya   *masterBiaya.MasterBiayaModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"master_biaya,omitempty"`

	// FK → tb_user (penanggung jawab, harus punya profil karyawan)
	UserID uint            `gorm:"column:user_id;not null;index" json:"user_id"`
	User   *user.UserModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PengeluaranModel) TableName() string {
	return "tb_pengeluaran"
}
