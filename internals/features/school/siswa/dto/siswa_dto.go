package dto

import (
	"strings"

	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/school/siswa/model"
	helper "sekolah_backend/internals/helpers"
	"sekolah_backend/internals/helpers/dbtime"
)

type SiswaRequest struct {
	Nama     string       `json:"nama" validate:"required,max=100"`
	TglLahir string       `json:"tgl_lahir" validate:"required,tanggal"`
	JK       string       `json:"jk" validate:"required,jk"`
	Alamat   string       `json:"alamat" validate:"required"`
	KelasID  helper.RefID `json:"kelas_id" validate:"required"`
	OrtuID   helper.RefID `json:"ortu_id" validate:"required"`
}

func (r *SiswaRequest) Normalize() {
	r.Nama = strings.TrimSpace(r.Nama)
	r.TglLahir = strings.TrimSpace(r.TglLahir)
	r.JK = constants.NormalizeJK(r.JK)
	r.Alamat = strings.TrimSpace(r.Alamat)
}

func (r SiswaRequest) ApplyTo(m *model.SiswaModel) {
	tgl, _ := dbtime.ParseDate(r.TglLahir)
	m.Nama = r.Nama
	m.TglLahir = tgl
	m.JK = r.JK
	m.Alamat = r.Alamat
	m.KelasID = r.KelasID.Uint()
	m.OrtuID = r.OrtuID.Uint()
	m.Kelas = nil
	m.Ortu = nil
}

func FromSiswaModel(m model.SiswaModel) SiswaRequest {
	return SiswaRequest{
		Nama:     m.Nama,
		TglLahir: m.TglLahir.String(),
		JK:       m.JK,
		Alamat:   m.Alamat,
		KelasID:  helper.RefID(m.KelasID),
		OrtuID:   helper.RefID(m.OrtuID),
	}
}

type SiswaPatch struct {
	Nama     helper.PatchField[string]       `json:"nama"`
	TglLahir helper.PatchField[string]       `json:"tgl_lahir"`
	JK       helper.PatchField[string]       `json:"jk"`
	Alamat   helper.PatchField[string]       `json:"alamat"`
	KelasID  helper.PatchField[helper.RefID] `json:"kelas_id"`
	OrtuID   helper.PatchField[helper.RefID] `json:"ortu_id"`
}

func (p SiswaPatch) Merge(base SiswaRequest) SiswaRequest {
	p.Nama.Apply(&base.Nama)
	p.TglLahir.Apply(&base.TglLahir)
	p.JK.Apply(&base.JK)
	p.Alamat.Apply(&base.Alamat)
	p.KelasID.Apply(&base.KelasID)
	p.OrtuID.Apply(&base.OrtuID)
	return base
}
