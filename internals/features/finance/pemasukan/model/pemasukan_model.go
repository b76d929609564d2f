package model

import (
	"time"

	tagihan "sekolah_backend/internals/features/finance/tagihan/model"
	"sekolah_backend/internals/helpers/dbtime"

	"github.com/shopspring/decimal"
)

type PemasukanModel struct {
	PemasukanID uint `gorm:"column:pemasukan_id;primaryKey;autoIncrement" json:"pemasukan_id"`

	// FK → tb_tagihan
	TagihanID uint                  `gorm:"column:tagihan_id;not null;index" json:"tagihan_id"`
	Tagihan   *tagihan.TagihanModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"tagihan,omitempty"`

	JumlahBayar      decimal.Decimal `gorm:"column:jumlah_bayar;type:numeric(12,2);not null" json:"jumlah_bayar"`
	TglBayar         dbtime.Date     `gorm:"column:tgl_bayar;not null" json:"tgl_bayar"`
	MetodePembayaran string          `gorm:"column:metode_pembayaran;type:varchar(50);not null" json:"metode_pembayaran"`
	Keterangan       *string         `gorm:"column:keterangan;type:text" json:"keterangan"`
	// manual: input admin; otomatis/midtrans: dibuat saat tagihan lunas
	Sumber string `gorm:"column:sumber;type:varchar(20);not null;default:manual;index" json:"sumber"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PemasukanModel) TableName() string {
	return "tb_pemasukan"
}
