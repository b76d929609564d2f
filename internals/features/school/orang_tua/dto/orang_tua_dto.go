package dto

import (
	"strings"

	"sekolah_backend/internals/features/school/orang_tua/model"
	siswa "sekolah_backend/internals/features/school/siswa/model"
	helper "sekolah_backend/internals/helpers"
)

type OrangTuaRequest struct {
	NamaAyah string `json:"nama_ayah" validate:"required,max=100"`
	NamaIbu  string `json:"nama_ibu" validate:"required,max=100"`
	NoHP     string `json:"no_hp" validate:"required,telepon"`
}

func (r *OrangTuaRequest) Normalize() {
	r.NamaAyah = strings.TrimSpace(r.NamaAyah)
	r.NamaIbu = strings.TrimSpace(r.NamaIbu)
	r.NoHP = strings.TrimSpace(r.NoHP)
}

func (r OrangTuaRequest) ApplyTo(m *model.OrangTuaModel) {
	m.NamaAyah = r.NamaAyah
	m.NamaIbu = r.NamaIbu
	m.NoHP = r.NoHP
}

func FromOrangTuaModel(m model.OrangTuaModel) OrangTuaRequest {
	return OrangTuaRequest{NamaAyah: m.NamaAyah, NamaIbu: m.NamaIbu, NoHP: m.NoHP}
}

type OrangTuaPatch struct {
	NamaAyah helper.PatchField[string] `json:"nama_ayah"`
	NamaIbu  helper.PatchField[string] `json:"nama_ibu"`
	NoHP     helper.PatchField[string] `json:"no_hp"`
}

func (p OrangTuaPatch) Merge(base OrangTuaRequest) OrangTuaRequest {
	p.NamaAyah.Apply(&base.NamaAyah)
	p.NamaIbu.Apply(&base.NamaIbu)
	p.NoHP.Apply(&base.NoHP)
	return base
}

// OrangTuaDetailResponse: data orang tua + anak-anaknya (dibaca dari tabel siswa saat ini).
type OrangTuaDetailResponse struct {
	model.OrangTuaModel
	SiswaIDs []uint             `json:"siswa_ids"`
	Siswa    []siswa.SiswaModel `json:"siswa"`
}
