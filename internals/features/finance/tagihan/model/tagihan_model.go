package model

import (
	"time"

	masterBiaya "sekolah_backend/internals/features/finance/master_biaya/model"
	siswa "sekolah_backend/internals/features/school/siswa/model"
	"sekolah_backend/internals/helpers/dbtime"

	"github.com/shopspring/decimal"
)

type TagihanModel struct {
	TagihanID uint `gorm:"column:tagihan_id;primaryKey;autoIncrement" json:"tagihan_id"`

	// FK → tb_siswa
	SiswaID uint              `gorm:"column:siswa_id;not null;index" json:"siswa_id"`
	Siswa   *siswa.SiswaModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"siswa,omitempty"`

	// FK → tb_master_biaya
	BiayaID uint                          `gorm:"column:biaya_id;not null;index" json:"biaya_id"`
	Biaya   *masterBiaya.MasterBiayaModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"master_biaya,omitempty"`

	Jumlah        decimal.Decimal `gorm:"column:jumlah;type:numeric(12,2);not null" json:"jumlah"`
	TglJatuhTempo dbtime.Date     `gorm:"column:tgl_jatuh_tempo;not null" json:"tgl_jatuh_tempo"`
	Status        string          `gorm:"column:status;type:varchar(20);not null;default:belum_lunas;index" json:"status"` // lunas | belum_lunas

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TagihanModel) TableName() string {
	return "tb_tagihan"
}
