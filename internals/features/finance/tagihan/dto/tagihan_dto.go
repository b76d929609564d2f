package dto

import (
	"strings"

	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/finance/tagihan/model"
	helper "sekolah_backend/internals/helpers"
	"sekolah_backend/internals/helpers/dbtime"
)

type TagihanRequest struct {
	SiswaID       helper.RefID   `json:"siswa_id" validate:"required"`
	BiayaID       helper.RefID   `json:"biaya_id" validate:"required"`
	Jumlah        helper.Nominal `json:"jumlah" validate:"required,nominal"`
	TglJatuhTempo string         `json:"tgl_jatuh_tempo" validate:"required,tanggal"`
	Status        string         `json:"status" validate:"required,oneof=lunas belum_lunas"`
}

func (r *TagihanRequest) Normalize() {
	r.TglJatuhTempo = strings.TrimSpace(r.TglJatuhTempo)
	r.Status = constants.NormalizeStatus(r.Status)
}

func (r TagihanRequest) ApplyTo(m *model.TagihanModel) {
	tgl, _ := dbtime.ParseDate(r.TglJatuhTempo)
	m.SiswaID = r.SiswaID.Uint()
	m.BiayaID = r.BiayaID.Uint()
	m.Jumlah = r.Jumlah.Decimal().Round(2)
	m.TglJatuhTempo = tgl
	m.Status = r.Status
	m.Siswa = nil
	m.Biaya = nil
}

func FromTagihanModel(m model.TagihanModel) TagihanRequest {
	return TagihanRequest{
		SiswaID:       helper.RefID(m.SiswaID),
		BiayaID:       helper.RefID(m.BiayaID),
		Jumlah:        helper.NominalOf(m.Jumlah),
		TglJatuhTempo: m.TglJatuhTempo.String(),
		Status:        m.Status,
	}
}

type TagihanPatch struct {
	SiswaID       helper.PatchField[helper.RefID]   `json:"siswa_id"`
	BiayaID       helper.PatchField[helper.RefID]   `json:"biaya_id"`
	Jumlah        helper.PatchField[helper.Nominal] `json:"jumlah"`
	TglJatuhTempo helper.PatchField[string]         `json:"tgl_jatuh_tempo"`
	Status        helper.PatchField[string]         `json:"status"`
}

func (p TagihanPatch) Merge(base TagihanRequest) TagihanRequest {
	p.SiswaID.Apply(&base.SiswaID)
	p.BiayaID.Apply(&base.BiayaID)
	p.Jumlah.Apply(&base.Jumlah)
	p.TglJatuhTempo.Apply(&base.TglJatuhTempo)
	p.Status.Apply(&base.Status)
	return base
}
