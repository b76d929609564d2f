package model

import (
	"time"

	kelas "sekolah_backend/internals/features/school/kelas/model"
	orangTua "sekolah_backend/internals/features/school/orang_tua/model"
	"sekolah_backend/internals/helpers/dbtime"
)

type SiswaModel struct {
	SiswaID uint `gorm:"column:siswa_id;primaryKey;autoIncrement" json:"siswa_id"`

	Nama     string      `gorm:"column:nama;type:varchar(100);not null" json:"nama"`
	TglLahir dbtime.Date `gorm:"column:tgl_lahir;not null" json:"tgl_lahir"`
	JK       string      `gorm:"column:jk;type:varchar(1);not null" json:"jk"`
	Alamat   string      `gorm:"column:alamat;type:text;not null" json:"alamat"`

	// FK → tb_kelas
	KelasID uint              `gorm:"column:kelas_id;not null;index" json:"kelas_id"`
	Kelas   *kelas.KelasModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"kelas,omitempty"`

	// FK → tb_ortu
	OrtuID uint                    `gorm:"column:ortu_id;not null;index" json:"ortu_id"`
	Ortu   *orangTua.OrangTuaModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"orang_tua,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SiswaModel) TableName() string {
	return "tb_siswa"
}
