package model

import (
	"time"

	karyawan "sekolah_backend/internals/features/school/karyawan/model"

	"github.com/shopspring/decimal"
)

type MasterBiayaModel struct {
	BiayaID uint `gorm:"column:biaya_id;primaryKey;autoIncrement" json:"biaya_id"`

	NamaBiaya  string          `gorm:"column:nama_biaya;type:varchar(100);not null" json:"nama_biaya"`
	Jumlah     decimal.Decimal `gorm:"column:jumlah;type:numeric(12,2);not null" json:"jumlah"`
	JenisBiaya string          `gorm:"column:jenis_biaya;type:varchar(20);not null;index" json:"jenis_biaya"` // pemasukan | pengeluaran
	Deskripsi  *string         `gorm:"column:deskripsi;type:text" json:"deskripsi"`

	// FK → tb_karyawan (penanggung jawab, opsional)
	KaryawanID *uint                   `gorm:"column:karyawan_id;index" json:"karyawan_id"`
	Karyawan   *karyawan.KaryawanModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"karyawan,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MasterBiayaModel) TableName() string {
	return "tb_master_biaya"
}
