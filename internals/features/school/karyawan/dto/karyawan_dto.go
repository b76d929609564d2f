package dto

import (
	"strings"

	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/school/karyawan/model"
	helper "sekolah_backend/internals/helpers"
	"sekolah_backend/internals/helpers/dbtime"
)

/* =========================================================
   CREATE (juga bentuk akhir setelah patch di-merge)
========================================================= */

type KaryawanRequest struct {
	Nama     string         `json:"nama" validate:"required,max=100"`
	Posisi   string         `json:"posisi" validate:"required,max=50"`
	TglLahir string         `json:"tgl_lahir" validate:"required,tanggal"`
	JK       string         `json:"jk" validate:"required,jk"`
	Alamat   string         `json:"alamat" validate:"required"`
	NoHP     string         `json:"no_hp" validate:"required,telepon"`
	Gaji     helper.Nominal `json:"gaji" validate:"required,nominal"`
}

func (r *KaryawanRequest) Normalize() {
	r.Nama = strings.TrimSpace(r.Nama)
	r.Posisi = strings.TrimSpace(r.Posisi)
	r.TglLahir = strings.TrimSpace(r.TglLahir)
	r.JK = constants.NormalizeJK(r.JK)
	r.Alamat = strings.TrimSpace(r.Alamat)
	r.NoHP = strings.TrimSpace(r.NoHP)
}

// ApplyTo dipanggil setelah ValidateStruct lolos.
func (r KaryawanRequest) ApplyTo(m *model.KaryawanModel) {
	tgl, _ := dbtime.ParseDate(r.TglLahir)
	m.Nama = r.Nama
	m.Posisi = r.Posisi
	m.TglLahir = tgl
	m.JK = r.JK
	m.Alamat = r.Alamat
	m.NoHP = r.NoHP
	m.Gaji = r.Gaji.Decimal().Round(2)
}

func FromKaryawanModel(m model.KaryawanModel) KaryawanRequest {
	return KaryawanRequest{
		Nama:     m.Nama,
		Posisi:   m.Posisi,
		TglLahir: m.TglLahir.String(),
		JK:       m.JK,
		Alamat:   m.Alamat,
		NoHP:     m.NoHP,
		Gaji:     helper.NominalOf(m.Gaji),
	}
}

/* =========================================================
   PATCH (hanya field yang dikirim yang berubah)
========================================================= */

type KaryawanPatch struct {
	Nama     helper.PatchField[string]         `json:"nama"`
	Posisi   helper.PatchField[string]         `json:"posisi"`
	TglLahir helper.PatchField[string]         `json:"tgl_lahir"`
	JK       helper.PatchField[string]         `json:"jk"`
	Alamat   helper.PatchField[string]         `json:"alamat"`
	NoHP     helper.PatchField[string]         `json:"no_hp"`
	Gaji     helper.PatchField[helper.Nominal] `json:"gaji"`
}

func (p KaryawanPatch) Merge(base KaryawanRequest) KaryawanRequest {
	p.Nama.Apply(&base.Nama)
	p.Posisi.Apply(&base.Posisi)
	p.TglLahir.Apply(&base.TglLahir)
	p.JK.Apply(&base.JK)
	p.Alamat.Apply(&base.Alamat)
	p.NoHP.Apply(&base.NoHP)
	p.Gaji.Apply(&base.Gaji)
	return base
}
