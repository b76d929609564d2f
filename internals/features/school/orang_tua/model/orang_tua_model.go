package model

import "time"

type OrangTuaModel struct {
	OrtuID uint `gorm:"column:ortu_id;primaryKey;autoIncrement" json:"ortu_id"`

	NamaAyah string `gorm:"column:nama_ayah;type:varchar(100);not null" json:"nama_ayah"`
	NamaIbu  string `gorm:"column:nama_ibu;type:varchar(100);not null" json:"nama_ibu"`
	NoHP     string `gorm:"column:no_hp;type:varchar(20);not null" json:"no_hp"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (OrangTuaModel) TableName() string {
	return "tb_ortu"
}

// DisplayName: nama ayah, kalau kosong pakai nama ibu.
func (m OrangTuaModel) DisplayName() string {
	if m.NamaAyah != "" {
		return m.NamaAyah
	}
	return m.NamaIbu
}
