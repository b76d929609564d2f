package controller

import (
	"sekolah_backend/internals/features/school/karyawan/dto"
	"sekolah_backend/internals/features/school/karyawan/model"
	helper "sekolah_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	msgNotFound = "Karyawan tidak ditemukan"
	msgInUse    = "Karyawan masih dipakai oleh kelas, master biaya, atau akun"
)

type KaryawanController struct {
	DB *gorm.DB
}

func NewKaryawanController(db *gorm.DB) *KaryawanController {
	return &KaryawanController{DB: db}
}

var sortColumns = map[string]string{
	"id":         "karyawan_id",
	"nama":       "nama",
	"posisi":     "posisi",
	"created_at": "created_at",
}

// GET /api/karyawan
func (ctl *KaryawanController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "id", "asc", helper.DefaultOpts)

	q := ctl.DB.WithContext(c.Context()).Model(&model.KaryawanModel{}).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}

	var rows []model.KaryawanModel
	if err := p.Apply(q, sortColumns, "id").Find(&rows).Error; err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonList(c, "Daftar karyawan", rows, total, helper.BuildMeta(total, p))
}

// GET /api/karyawan/count
func (ctl *KaryawanController) Count(c *fiber.Ctx) error {
	var total int64
	if err := ctl.DB.WithContext(c.Context()).Model(&model.KaryawanModel{}).Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonTotal(c, "Total karyawan", total)
}

// GET /api/karyawan/:karyawan_id
func (ctl *KaryawanController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "karyawan_id")
	if err != nil {
		return err
	}
	var m model.KaryawanModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, id).Error; err != nil {
		return helper.NotFoundOr(err, msgNotFound)
	}
	return helper.JsonOK(c, "Detail karyawan", m)
}

// POST /api/karyawan
func (ctl *KaryawanController) Create(c *fiber.Ctx) error {
	var req dto.KaryawanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyError(err)
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var m model.KaryawanModel
	req.ApplyTo(&m)
	if err := ctl.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		return helper.MapWriteError(err)
	}
	return helper.JsonCreated(c, "Karyawan berhasil dibuat", m)
}

// PUT|PATCH /api/karyawan/:karyawan_id
func (ctl *KaryawanController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "karyawan_id")
	if err != nil {
		return err
	}
	var patch dto.KaryawanPatch
	if err := c.BodyParser(&patch); err != nil {
		return helper.BodyError(err)
	}

	var out model.KaryawanModel
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.KaryawanModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}

		req := patch.Merge(dto.FromKaryawanModel(m))
		req.Normalize()
		if err := helper.ValidateStruct(req); err != nil {
			return err
		}

		req.ApplyTo(&m)
		if err := tx.Save(&m).Error; err != nil {
			return helper.MapWriteError(err)
		}
		out = m
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Karyawan berhasil diperbarui", out)
}

// DELETE /api/karyawan/:karyawan_id
func (ctl *KaryawanController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "karyawan_id")
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.KaryawanModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		return helper.MapDeleteError(tx.Delete(&m).Error, msgInUse)
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Karyawan berhasil dihapus")
}
