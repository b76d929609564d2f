package dto

import (
	"strings"

	"sekolah_backend/internals/features/finance/pemasukan/model"
	helper "sekolah_backend/internals/helpers"
	"sekolah_backend/internals/helpers/dbtime"
)

type PemasukanRequest struct {
	TagihanID        helper.RefID   `json:"tagihan_id" validate:"required"`
	JumlahBayar      helper.Nominal `json:"jumlah_bayar" validate:"required,nominal"`
	TglBayar         string         `json:"tgl_bayar" validate:"required,tanggal"`
	MetodePembayaran string         `json:"metode_pembayaran" validate:"required,max=50"`
	Keterangan       *string        `json:"keterangan"`
}

func (r *PemasukanRequest) Normalize() {
	r.TglBayar = strings.TrimSpace(r.TglBayar)
	r.MetodePembayaran = strings.TrimSpace(r.MetodePembayaran)
	if r.Keterangan != nil {
		k := strings.TrimSpace(*r.Keterangan)
		r.Keterangan = &k
	}
}

// ApplyTo tidak menyentuh Sumber.
func (r PemasukanRequest) ApplyTo(m *model.PemasukanModel) {
	tgl, _ := dbtime.ParseDate(r.TglBayar)
	m.TagihanID = r.TagihanID.Uint()
	m.JumlahBayar = r.JumlahBayar.Decimal().Round(2)
	m.TglBayar = tgl
	m.MetodePembayaran = r.MetodePembayaran
	m.Keterangan = r.Keterangan
	m.Tagihan = nil
}

func FromPemasukanModel(m model.PemasukanModel) PemasukanRequest {
	return PemasukanRequest{
		TagihanID:        helper.RefID(m.TagihanID),
		JumlahBayar:      helper.NominalOf(m.JumlahBayar),
		TglBayar:         m.TglBayar.String(),
		MetodePembayaran: m.MetodePembayaran,
		Keterangan:       m.Keterangan,
	}
}

type PemasukanPatch struct {
	TagihanID        helper.PatchField[helper.RefID]   `json:"tagihan_id"`
	JumlahBayar      helper.PatchField[helper.Nominal] `json:"jumlah_bayar"`
	TglBayar         helper.PatchField[string]         `json:"tgl_bayar"`
	MetodePembayaran helper.PatchField[string]         `json:"metode_pembayaran"`
	Keterangan       helper.PatchField[string]         `json:"keterangan"`
}

func (p PemasukanPatch) Merge(base PemasukanRequest) PemasukanRequest {
	p.TagihanID.Apply(&base.TagihanID)
	p.JumlahBayar.Apply(&base.JumlahBayar)
	p.TglBayar.Apply(&base.TglBayar)
	p.MetodePembayaran.Apply(&base.MetodePembayaran)
	p.Keterangan.ApplyPtr(&base.Keterangan)
	return base
}
