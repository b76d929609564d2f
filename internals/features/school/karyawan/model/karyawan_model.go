package model

import (
	"time"

	"sekolah_backend/internals/helpers/dbtime"

	"github.com/shopspring/decimal"
)

type KaryawanModel struct {
	KaryawanID uint `gorm:"column:karyawan_id;primaryKey;autoIncrement" json:"karyawan_id"`

	Nama     string      `gorm:"column:nama;type:varchar(100);not null" json:"nama"`
	Posisi   string      `gorm:"column:posisi;type:varchar(50);not null" json:"posisi"`
	TglLahir dbtime.Date `gorm:"column:tgl_lahir;not null" json:"tgl_lahir"`
	JK       string      `gorm:"column:jk;type:varchar(1);not null" json:"jk"`
	Alamat   string      `gorm:"column:alamat;type:text;not null" json:"alamat"`
	NoHP     string      `gorm:"column:no_hp;type:varchar(20);not null" json:"no_hp"`

	Gaji decimal.Decimal `gorm:"column:gaji;type:numeric(12,2);not null" json:"gaji"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (KaryawanModel) TableName() string {
	return "tb_karyawan"
}
