package model

import (
	"time"

	karyawan "sekolah_backend/internals/features/school/karyawan/model"
)

type KelasModel struct {
	KelasID uint `gorm:"column:kelas_id;primaryKey;autoIncrement" json:"kelas_id"`

	NamaKelas   string  `gorm:"column:nama_kelas;type:varchar(50);not null" json:"nama_kelas"`
	Kapasitas   int     `gorm:"column:kapasitas;not null" json:"kapasitas"`
	Deskripsi   *string `gorm:"column:deskripsi;type:text" json:"deskripsi"`
	TahunAjaran string  `gorm:"column:tahun_ajaran;type:varchar(20);not null" json:"tahun_ajaran"`

	// FK → tb_karyawan (wali kelas)
	KaryawanID uint                    `gorm:"column:karyawan_id;not null;index" json:"karyawan_id"`
	Karyawan   *karyawan.KaryawanModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"karyawan,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (KelasModel) TableName() string {
	return "tb_kelas"
}
