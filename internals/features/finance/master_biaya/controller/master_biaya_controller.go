package controller

import (
	"strings"

	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/finance/master_biaya/dto"
	"sekolah_backend/internals/features/finance/master_biaya/model"
	karyawan "sekolah_backend/internals/features/school/karyawan/model"
	helper "sekolah_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	msgNotFound         = "Master biaya tidak ditemukan"
	msgInUse            = "Master biaya masih dipakai oleh tagihan atau pengeluaran"
	msgKaryawanNotFound = "karyawan_id tidak ditemukan"
)

type MasterBiayaController struct {
	DB *gorm.DB
}

func NewMasterBiayaController(db *gorm.DB) *MasterBiayaController {
	return &MasterBiayaController{DB: db}
}

var sortColumns = map[string]string{
	"id":          "biaya_id",
	"nama_biaya":  "nama_biaya",
	"jumlah":      "jumlah",
	"jenis_biaya": "jenis_biaya",
	"created_at":  "created_at",
}

// GET /api/masterbiaya?nama_biaya=&jenis_biaya=
func (ctl *MasterBiayaController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "id", "asc", helper.DefaultOpts)
	q := ctl.DB.WithContext(c.Context()).Model(&model.MasterBiayaModel{})
	if nama := strings.TrimSpace(c.Query("nama_biaya")); nama != "" {
		q = q.Where("LOWER(nama_biaya) LIKE ?", "%"+strings.ToLower(nama)+"%")
	}
	if jenis := strings.TrimSpace(c.Query("jenis_biaya")); jenis != "" {
		q = q.Where("jenis_biaya = ?", constants.NormalizeJenis(jenis))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}
	var rows []model.MasterBiayaModel
	if err := p.Apply(q, sortColumns, "id").Preload("Karyawan").Find(&rows).Error; err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonList(c, "Daftar master biaya", rows, total, helper.BuildMeta(total, p))
}

// GET /api/masterbiaya/:biaya_id
func (ctl *MasterBiayaController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "biaya_id")
	if err != nil {
		return err
	}
	m, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail master biaya", m)
}

func (ctl *MasterBiayaController) load(db *gorm.DB, id uint) (*model.MasterBiayaModel, error) {
	var m model.MasterBiayaModel
	if err := db.Preload("Karyawan").First(&m, id).Error; err != nil {
		return nil, helper.NotFoundOr(err, msgNotFound)
	}
	return &m, nil
}

func ensureKaryawan(tx *gorm.DB, req dto.MasterBiayaRequest) error {
	id := req.KaryawanRef()
	if id == nil {
		return nil
	}
	return helper.EnsureRef(tx, &karyawan.KaryawanModel{}, *id, "karyawan_id", msgKaryawanNotFound)
}

// POST /api/masterbiaya
func (ctl *MasterBiayaController) Create(c *fiber.Ctx) error {
	var req dto.MasterBiayaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyError(err)
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var m model.MasterBiayaModel
	err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureKaryawan(tx, req); err != nil {
			return err
		}
		req.ApplyTo(&m)
		return helper.MapWriteError(tx.Omit("Karyawan").Create(&m).Error)
	})
	if err != nil {
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), m.BiayaID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Master biaya berhasil dibuat", out)
}

// PUT|PATCH /api/masterbiaya/:biaya_id
func (ctl *MasterBiayaController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "biaya_id")
	if err != nil {
		return err
	}
	var patch dto.MasterBiayaPatch
	if err := c.BodyParser(&patch); err != nil {
		return helper.BodyError(err)
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.MasterBiayaModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		req := patch.Merge(dto.FromMasterBiayaModel(m))
		req.Normalize()
		if err := helper.ValidateStruct(req); err != nil {
			return err
		}
		if err := ensureKaryawan(tx, req); err != nil {
			return err
		}
		req.ApplyTo(&m)
		return helper.MapWriteError(tx.Omit("Karyawan").Save(&m).Error)
	})
	if err != nil {
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Master biaya berhasil diperbarui", out)
}

// DELETE /api/masterbiaya/:biaya_id
func (ctl *MasterBiayaController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "biaya_id")
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.MasterBiayaModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		return helper.MapDeleteError(tx.Delete(&m).Error, msgInUse)
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Master biaya berhasil dihapus")
}
