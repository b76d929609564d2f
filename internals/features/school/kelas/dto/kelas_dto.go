package dto

import (
	"strings"

	"sekolah_backend/internals/features/school/kelas/model"
	helper "sekolah_backend/internals/helpers"
)

type KelasRequest struct {
	NamaKelas   string       `json:"nama_kelas" validate:"required,max=50"`
	Kapasitas   *int         `json:"kapasitas" validate:"required,gt=0"`
	Deskripsi   *string      `json:"deskripsi"`
	TahunAjaran string       `json:"tahun_ajaran" validate:"required,tahun_ajaran"`
	KaryawanID  helper.RefID `json:"karyawan_id" validate:"required"`
}

func (r *KelasRequest) Normalize() {
	r.NamaKelas = strings.TrimSpace(r.NamaKelas)
	r.TahunAjaran = strings.TrimSpace(r.TahunAjaran)
	if r.Deskripsi != nil {
		d := strings.TrimSpace(*r.Deskripsi)
		r.Deskripsi = &d
	}
}

func (r KelasRequest) ApplyTo(m *model.KelasModel) {
	m.NamaKelas = r.NamaKelas
	m.Kapasitas = *r.Kapasitas
	m.Deskripsi = r.Deskripsi
	m.TahunAjaran = r.TahunAjaran
	m.KaryawanID = r.KaryawanID.Uint()
	m.Karyawan = nil
}

func FromKelasModel(m model.KelasModel) KelasRequest {
	kap := m.Kapasitas
	return KelasRequest{
		NamaKelas:   m.NamaKelas,
		Kapasitas:   &kap,
		Deskripsi:   m.Deskripsi,
		TahunAjaran: m.TahunAjaran,
		KaryawanID:  helper.RefID(m.KaryawanID),
	}
}

type KelasPatch struct {
	NamaKelas   helper.PatchField[string]       `json:"nama_kelas"`
	Kapasitas   helper.PatchField[int]          `json:"kapasitas"`
	Deskripsi   helper.PatchField[string]       `json:"deskripsi"`
	TahunAjaran helper.PatchField[string]       `json:"tahun_ajaran"`
	KaryawanID  helper.PatchField[helper.RefID] `json:"karyawan_id"`
}

func (p KelasPatch) Merge(base KelasRequest) KelasRequest {
	p.NamaKelas.Apply(&base.NamaKelas)
	p.Kapasitas.ApplyPtr(&base.Kapasitas)
	p.Deskripsi.ApplyPtr(&base.Deskripsi)
	p.TahunAjaran.Apply(&base.TahunAjaran)
	p.KaryawanID.Apply(&base.KaryawanID)
	return base
}
