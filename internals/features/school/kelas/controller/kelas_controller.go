package controller

import (
	karyawan "sekolah_backend/internals/features/school/karyawan/model"
	"sekolah_backend/internals/features/school/kelas/dto"
	"sekolah_backend/internals/features/school/kelas/model"
	helper "sekolah_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	msgNotFound         = "Kelas tidak ditemukan"
	msgInUse            = "Kelas masih memiliki siswa"
	msgKaryawanNotFound = "karyawan_id tidak ditemukan"
)

type KelasController struct {
	DB *gorm.DB
}

func NewKelasController(db *gorm.DB) *KelasController {
	return &KelasController{DB: db}
}

var sortColumns = map[string]string{
	"id":           "kelas_id",
	"nama_kelas":   "nama_kelas",
	"tahun_ajaran": "tahun_ajaran",
	"created_at":   "created_at",
}

// GET /api/kelas
func (ctl *KelasController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "id", "asc", helper.DefaultOpts)

	q := ctl.DB.WithContext(c.Context()).Model(&model.KelasModel{})
	if ta := c.Query("tahun_ajaran"); ta != "" {
		q = q.Where("tahun_ajaran = ?", ta)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}
	var rows []model.KelasModel
	if err := p.Apply(q, sortColumns, "id").Preload("Karyawan").Find(&rows).Error; err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonList(c, "Daftar kelas", rows, total, helper.BuildMeta(total, p))
}

// GET /api/kelas/:kelas_id
func (ctl *KelasController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "kelas_id")
	if err != nil {
		return err
	}
	m, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail kelas", m)
}

func (ctl *KelasController) load(db *gorm.DB, id uint) (*model.KelasModel, error) {
	var m model.KelasModel
	if err := db.Preload("Karyawan").First(&m, id).Error; err != nil {
		return nil, helper.NotFoundOr(err, msgNotFound)
	}
	return &m, nil
}

// POST /api/kelas
func (ctl *KelasController) Create(c *fiber.Ctx) error {
	var req dto.KelasRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyError(err)
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var m model.KelasModel
	err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var k karyawan.KaryawanModel
		if err := helper.EnsureRef(tx, &k, req.KaryawanID.Uint(), "karyawan_id", msgKaryawanNotFound); err != nil {
			return err
		}
		req.ApplyTo(&m)
		return helper.MapWriteError(tx.Omit("Karyawan").Create(&m).Error)
	})
	if err != nil {
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), m.KelasID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", out)
}

// PUT|PATCH /api/kelas/:kelas_id
func (ctl *KelasController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "kelas_id")
	if err != nil {
		return err
	}
	var patch dto.KelasPatch
	if err := c.BodyParser(&patch); err != nil {
		return helper.BodyError(err)
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.KelasModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}

		req := patch.Merge(dto.FromKelasModel(m))
		req.Normalize()
		if err := helper.ValidateStruct(req); err != nil {
			return err
		}
		var k karyawan.KaryawanModel
		if err := helper.EnsureRef(tx, &k, req.KaryawanID.Uint(), "karyawan_id", msgKaryawanNotFound); err != nil {
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
	return helper.JsonUpdated(c, "Kelas berhasil diperbarui", out)
}

// DELETE /api/kelas/:kelas_id
func (ctl *KelasController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "kelas_id")
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.KelasModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		return helper.MapDeleteError(tx.Delete(&m).Error, msgInUse)
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Kelas berhasil dihapus")
}
