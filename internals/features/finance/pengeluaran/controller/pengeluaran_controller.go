package controller

import (
	"context"
	"log"

	"sekolah_backend/internals/constants"
	masterBiaya "sekolah_backend/internals/features/finance/master_biaya/model"
	"sekolah_backend/internals/features/finance/pengeluaran/dto"
	"sekolah_backend/internals/features/finance/pengeluaran/model"
	user "sekolah_backend/internals/features/users/user/model"
	helper "sekolah_backend/internals/helpers"
	helperStorage "sekolah_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgNotFound      = "Pengeluaran tidak ditemukan"
	msgBiayaInvalid  = "biaya_id tidak valid atau bukan tipe pengeluaran"
	msgUserInvalid   = "User (guru) tidak valid"
	defaultMaxUpload = 20 << 20
)

type PengeluaranController struct {
	DB        *gorm.DB
	Blob      helperStorage.BlobService
	MaxUpload int64
}

func NewPengeluaranController(db *gorm.DB, blob helperStorage.BlobService, maxUpload int64) *PengeluaranController {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &PengeluaranController{DB: db, Blob: blob, MaxUpload: maxUpload}
}

var sortColumns = map[string]string{
	"id":              "pengeluaran_id",
	"tgl_pengeluaran": "tgl_pengeluaran",
	"jumlah":          "jumlah",
	"created_at":      "created_at",
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Biaya").Preload("User.Karyawan")
}

func (ctl *PengeluaranController) decorate(m *model.PengeluaranModel) {
	if m.BuktiPengeluaran != nil && *m.BuktiPengeluaran != "" && ctl.Blob != nil {
		m.BuktiURL = ctl.Blob.PublicURL(*m.BuktiPengeluaran)
	}
}

func (ctl *PengeluaranController) filtered(c *fiber.Ctx) (*gorm.DB, error) {
	q := ctl.DB.WithContext(c.Context()).Model(&model.PengeluaranModel{})
	biayaID, err := helper.QueryID(c, "biaya_id")
	if err != nil {
		return nil, err
	}
	if biayaID > 0 {
		q = q.Where("biaya_id = ?", biayaID)
	}
	return q.Session(&gorm.Session{}), nil
}

// GET /api/pengeluaran?biaya_id=
func (ctl *PengeluaranController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "id", "asc", helper.DefaultOpts)
	q, err := ctl.filtered(c)
	if err != nil {
		return err
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}
	var rows []model.PengeluaranModel
	if err := withRelations(p.Apply(q, sortColumns, "id")).Find(&rows).Error; err != nil {
		return helper.Unexpected(err)
	}
	for i := range rows {
		ctl.decorate(&rows[i])
	}
	return helper.JsonList(c, "Daftar pengeluaran", rows, total, helper.BuildMeta(total, p))
}

// GET /api/pengeluaran/total
func (ctl *PengeluaranController) Total(c *fiber.Ctx) error {
	q, err := ctl.filtered(c)
	if err != nil {
		return err
	}
	var sum decimal.Decimal
	if err := q.Select("COALESCE(SUM(jumlah), 0)").Row().Scan(&sum); err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonTotal(c, "Total pengeluaran", sum.Round(2))
}

// GET /api/pengeluaran/:pengeluaran_id
func (ctl *PengeluaranController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "pengeluaran_id")
	if err != nil {
		return err
	}
	m, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail pengeluaran", m)
}

func (ctl *PengeluaranController) load(db *gorm.DB, id uint) (*model.PengeluaranModel, error) {
	var m model.PengeluaranModel
	if err := withRelations(db).First(&m, id).Error; err != nil {
		return nil, helper.NotFoundOr(err, msgNotFound)
	}
	ctl.decorate(&m)
	return &m, nil
}

// ensureRefs: biaya harus jenis pengeluaran, user harus punya profil karyawan.
func ensureRefs(tx *gorm.DB, req dto.PengeluaranRequest) error {
	var mb masterBiaya.MasterBiayaModel
	if err := helper.EnsureRef(tx, &mb, req.BiayaID.Uint(), "biaya_id", msgBiayaInvalid); err != nil {
		return err
	}
	if mb.JenisBiaya != constants.JenisPengeluaran {
		return helper.ReferenceNotFound("biaya_id", msgBiayaInvalid)
	}
	var u user.UserModel
	if err := helper.EnsureRef(tx, &u, req.UserID.Uint(), "user_id", msgUserInvalid); err != nil {
		return err
	}
	if u.KaryawanID == nil {
		return helper.ReferenceNotFound("user_id", msgUserInvalid)
	}
	return nil
}

// storeEvidence: file ditulis sebelum transaksi; key "" kalau tidak ada upload.
func (ctl *PengeluaranController) storeEvidence(ctx context.Context, ev *helperStorage.Evidence) (string, error) {
	if ev == nil {
		return "", nil
	}
	if ctl.Blob == nil {
		return "", helper.Unexpected(nil)
	}
	if err := ctl.Blob.Put(ctx, ev.Key, ev.Reader(), ev.ContentType); err != nil {
		return "", helper.Unexpected(err)
	}
	return ev.Key, nil
}

// dropEvidence: gagal hapus cukup dicatat; sisa file dibersihkan reaper.
func (ctl *PengeluaranController) dropEvidence(key string) {
	if key == "" || ctl.Blob == nil {
		return
	}
	if err := ctl.Blob.Delete(context.Background(), key); err != nil {
		log.Printf("[WARN] hapus bukti %s gagal: %v", key, err)
	}
}

// prepare: required → format → file. Belum ada yang ditulis.
func (ctl *PengeluaranController) prepare(c *fiber.Ctx, base dto.PengeluaranRequest) (dto.PengeluaranPatch, *helperStorage.Evidence, error) {
	patch, fh, err := dto.ParseForm(c, constants.EvidenceField)
	if err != nil {
		return patch, nil, err
	}
	req := patch.Merge(base)
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return patch, nil, err
	}
	ev, err := helperStorage.CheckEvidence(fh, ctl.MaxUpload)
	return patch, ev, err
}

// POST /api/pengeluaran (multipart, file opsional di field bukti_pengeluaran)
func (ctl *PengeluaranController) Create(c *fiber.Ctx) error {
	patch, ev, err := ctl.prepare(c, dto.PengeluaranRequest{})
	if err != nil {
		return err
	}
	req := patch.Merge(dto.PengeluaranRequest{})
	req.Normalize()

	key, err := ctl.storeEvidence(c.UserContext(), ev)
	if err != nil {
		return err
	}

	var m model.PengeluaranModel
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureRefs(tx, req); err != nil {
			return err
		}
		req.ApplyTo(&m)
		if key != "" {
			m.BuktiPengeluaran = &key
		}
		return helper.MapWriteError(tx.Omit("Biaya", "User").Create(&m).Error)
	})
	if err != nil {
		ctl.dropEvidence(key)
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), m.PengeluaranID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Pengeluaran berhasil dibuat", out)
}

// PUT|PATCH /api/pengeluaran/:pengeluaran_id
func (ctl *PengeluaranController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "pengeluaran_id")
	if err != nil {
		return err
	}

	var current model.PengeluaranModel
	if err := ctl.DB.WithContext(c.Context()).First(&current, id).Error; err != nil {
		return helper.NotFoundOr(err, msgNotFound)
	}
	patch, ev, err := ctl.prepare(c, dto.FromPengeluaranModel(current))
	if err != nil {
		return err
	}

	key, err := ctl.storeEvidence(c.UserContext(), ev)
	if err != nil {
		return err
	}

	var oldKey string
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.PengeluaranModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		// merge ulang dari baris terkunci
		req := patch.Merge(dto.FromPengeluaranModel(m))
		req.Normalize()
		if err := helper.ValidateStruct(req); err != nil {
			return err
		}
		if err := ensureRefs(tx, req); err != nil {
			return err
		}
		req.ApplyTo(&m)
		if key != "" {
			if m.BuktiPengeluaran != nil {
				oldKey = *m.BuktiPengeluaran
			}
			m.BuktiPengeluaran = &key
		}
		return helper.MapWriteError(tx.Omit("Biaya", "User").Save(&m).Error)
	})
	if err != nil {
		ctl.dropEvidence(key)
		return err
	}
	ctl.dropEvidence(oldKey)

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Pengeluaran berhasil diperbarui", out)
}

// DELETE /api/pengeluaran/:pengeluaran_id (file bukti dihapus setelah commit)
func (ctl *PengeluaranController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "pengeluaran_id")
	if err != nil {
		return err
	}
	var oldKey string
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.PengeluaranModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		if m.BuktiPengeluaran != nil {
			oldKey = *m.BuktiPengeluaran
		}
		return helper.MapWriteError(tx.Delete(&m).Error)
	})
	if err != nil {
		return err
	}
	ctl.dropEvidence(oldKey)
	return helper.JsonDeleted(c, "Pengeluaran berhasil dihapus")
}
