package dto

import (
	"strings"

	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/finance/master_biaya/model"
	helper "sekolah_backend/internals/helpers"
)

type MasterBiayaRequest struct {
	NamaBiaya  string         `json:"nama_biaya" validate:"required,max=100"`
	Jumlah     helper.Nominal `json:"jumlah" validate:"required,nominal"`
	JenisBiaya string         `json:"jenis_biaya" validate:"required,oneof=pemasukan pengeluaran"`
	Deskripsi  *string        `json:"deskripsi"`
	KaryawanID *helper.RefID  `json:"karyawan_id"`
}

func (r *MasterBiayaRequest) Normalize() {
	r.NamaBiaya = strings.TrimSpace(r.NamaBiaya)
	r.JenisBiaya = constants.NormalizeJenis(r.JenisBiaya)
	if r.Deskripsi != nil {
		d := strings.TrimSpace(*r.Deskripsi)
		r.Deskripsi = &d
	}
}

// KaryawanRef: nil kalau tidak diisi (0 dianggap kosong).
func (r MasterBiayaRequest) KaryawanRef() *uint {
	if r.KaryawanID == nil {
		return nil
	}
	return r.KaryawanID.Ptr()
}

func (r MasterBiayaRequest) ApplyTo(m *model.MasterBiayaModel) {
	m.NamaBiaya = r.NamaBiaya
	m.Jumlah = r.Jumlah.Decimal().Round(2)
	m.JenisBiaya = r.JenisBiaya
	m.Deskripsi = r.Deskripsi
	m.KaryawanID = r.KaryawanRef()
	m.Karyawan = nil
}

func FromMasterBiayaModel(m model.MasterBiayaModel) MasterBiayaRequest {
	r := MasterBiayaRequest{
		NamaBiaya:  m.NamaBiaya,
		Jumlah:     helper.NominalOf(m.Jumlah),
		JenisBiaya: m.JenisBiaya,
		Deskripsi:  m.Deskripsi,
	}
	if m.KaryawanID != nil {
		id := helper.RefID(*m.KaryawanID)
		r.KaryawanID = &id
	}
	return r
}

type MasterBiayaPatch struct {
	NamaBiaya  helper.PatchField[string]         `json:"nama_biaya"`
	Jumlah     helper.PatchField[helper.Nominal] `json:"jumlah"`
	JenisBiaya helper.PatchField[string]         `json:"jenis_biaya"`
	Deskripsi  helper.PatchField[string]         `json:"deskripsi"`
	KaryawanID helper.PatchField[helper.RefID]   `json:"karyawan_id"`
}

func (p MasterBiayaPatch) Merge(base MasterBiayaRequest) MasterBiayaRequest {
	p.NamaBiaya.Apply(&base.NamaBiaya)
	p.Jumlah.Apply(&base.Jumlah)
	p.JenisBiaya.Apply(&base.JenisBiaya)
	p.Deskripsi.ApplyPtr(&base.Deskripsi)
	p.KaryawanID.ApplyPtr(&base.KaryawanID)
	return base
}
