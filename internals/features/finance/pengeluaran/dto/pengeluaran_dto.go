package dto

import (
	"mime/multipart"
	"strings"

	"sekolah_backend/internals/features/finance/pengeluaran/model"
	helper "sekolah_backend/internals/helpers"
	"sekolah_backend/internals/helpers/dbtime"

	"github.com/gofiber/fiber/v2"
)

type PengeluaranRequest struct {
	Deskripsi      string         `json:"deskripsi" validate:"required"`
	Jumlah         helper.Nominal `json:"jumlah" validate:"required,nominal"`
	TglPengeluaran string         `json:"tgl_pengeluaran" validate:"required,tanggal"`
	BiayaID        helper.RefID   `json:"biaya_id" validate:"required"`
	UserID         helper.RefID   `json:"user_id" validate:"required"`
}

func (r *PengeluaranRequest) Normalize() {
	r.Deskripsi = strings.TrimSpace(r.Deskripsi)
	r.TglPengeluaran = strings.TrimSpace(r.TglPengeluaran)
}

// ApplyTo tidak menyentuh BuktiPengeluaran.
func (r PengeluaranRequest) ApplyTo(m *model.PengeluaranModel) {
	tgl, _ := dbtime.ParseDate(r.TglPengeluaran)
	m.Deskripsi = r.Deskripsi
	m.Jumlah = r.Jumlah.Decimal().Round(2)
	m.TglPengeluaran = tgl
	m.BiayaID = r.BiayaID.Uint()
	m.UserID = r.UserID.Uint()
	m.Biaya = nil
	m.User = nil
}

func FromPengeluaranModel(m model.PengeluaranModel) PengeluaranRequest {
	return PengeluaranRequest{
		Deskripsi:      m.Deskripsi,
		Jumlah:         helper.NominalOf(m.Jumlah),
		TglPengeluaran: m.TglPengeluaran.String(),
		BiayaID:        helper.RefID(m.BiayaID),
		UserID:         helper.RefID(m.UserID),
	}
}

type PengeluaranPatch struct {
	Deskripsi      helper.PatchField[string]         `json:"deskripsi"`
	Jumlah         helper.PatchField[helper.Nominal] `json:"jumlah"`
	TglPengeluaran helper.PatchField[string]         `json:"tgl_pengeluaran"`
	BiayaID        helper.PatchField[helper.RefID]   `json:"biaya_id"`
	UserID         helper.PatchField[helper.RefID]   `json:"user_id"`
}

func (p PengeluaranPatch) Merge(base PengeluaranRequest) PengeluaranRequest {
	p.Deskripsi.Apply(&base.Deskripsi)
	p.Jumlah.Apply(&base.Jumlah)
	p.TglPengeluaran.Apply(&base.TglPengeluaran)
	p.BiayaID.Apply(&base.BiayaID)
	p.UserID.Apply(&base.UserID)
	return base
}

/* =========================================================
   Multipart: field yang ada di form = field yang dikirim
========================================================= */

// ParseForm membaca multipart (dengan file bukti) atau JSON biasa.
func ParseForm(c *fiber.Ctx, fileField string) (PengeluaranPatch, *multipart.FileHeader, error) {
	var p PengeluaranPatch
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&p); err != nil {
			return p, nil, helper.BodyError(err)
		}
		return p, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return p, nil, helper.BodyError(err)
	}
	get := func(key string) (string, bool) {
		vs, ok := form.Value[key]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	}

	if v, ok := get("deskripsi"); ok {
		p.Deskripsi = helper.Set(v)
	}
	if v, ok := get("jumlah"); ok {
		p.Jumlah = helper.Set(helper.Nominal(strings.TrimSpace(v)))
	}
	if v, ok := get("tgl_pengeluaran"); ok {
		p.TglPengeluaran = helper.Set(v)
	}
	for key, dst := range map[string]*helper.PatchField[helper.RefID]{"biaya_id": &p.BiayaID, "user_id": &p.UserID} {
		v, ok := get(key)
		if !ok {
			continue
		}
		id, valid := helper.ParseRefID(v)
		if !valid {
			return p, nil, helper.InvalidFormat(key, key+" tidak valid")
		}
		*dst = helper.Set(id)
	}

	var fh *multipart.FileHeader
	if files := form.File[fileField]; len(files) > 0 {
		fh = files[0]
	}
	return p, fh, nil
}
