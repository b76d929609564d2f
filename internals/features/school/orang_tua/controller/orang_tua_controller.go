package controller

import (
	"sekolah_backend/internals/features/school/orang_tua/dto"
	"sekolah_backend/internals/features/school/orang_tua/model"
	siswa "sekolah_backend/internals/features/school/siswa/model"
	helper "sekolah_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	msgNotFound = "Data orang tua tidak ditemukan"
	msgInUse    = "Data orang tua masih dipakai oleh siswa"
)

type OrangTuaController struct {
	DB *gorm.DB
}

func NewOrangTuaController(db *gorm.DB) *OrangTuaController {
	return &OrangTuaController{DB: db}
}

var sortColumns = map[string]string{
	"id":         "ortu_id",
	"nama_ayah":  "nama_ayah",
	"nama_ibu":   "nama_ibu",
	"created_at": "created_at",
}

// GET /api/orangtua
func (ctl *OrangTuaController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "id", "asc", helper.DefaultOpts)

	q := ctl.DB.WithContext(c.Context()).Model(&model.OrangTuaModel{}).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}
	var rows []model.OrangTuaModel
	if err := p.Apply(q, sortColumns, "id").Find(&rows).Error; err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonList(c, "Daftar orang tua", rows, total, helper.BuildMeta(total, p))
}

// GET /api/orangtua/:ortu_id
func (ctl *OrangTuaController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "ortu_id")
	if err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.Context())

	var m model.OrangTuaModel
	if err := db.First(&m, id).Error; err != nil {
		return helper.NotFoundOr(err, msgNotFound)
	}

	var anak []siswa.SiswaModel
	if err := db.Preload("Kelas").Where("ortu_id = ?", id).Order("siswa_id ASC").Find(&anak).Error; err != nil {
		return helper.Unexpected(err)
	}
	ids := make([]uint, 0, len(anak))
	for _, s := range anak {
		ids = append(ids, s.SiswaID)
	}

	return helper.JsonOK(c, "Detail orang tua", dto.OrangTuaDetailResponse{
		OrangTuaModel: m,
		SiswaIDs:      ids,
		Siswa:         anak,
	})
}

// POST /api/orangtua
func (ctl *OrangTuaController) Create(c *fiber.Ctx) error {
	var req dto.OrangTuaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyError(err)
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var m model.OrangTuaModel
	req.ApplyTo(&m)
	if err := ctl.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		return helper.MapWriteError(err)
	}
	return helper.JsonCreated(c, "Data orang tua berhasil dibuat", m)
}

// PUT|PATCH /api/orangtua/:ortu_id
func (ctl *OrangTuaController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "ortu_id")
	if err != nil {
		return err
	}
	var patch dto.OrangTuaPatch
	if err := c.BodyParser(&patch); err != nil {
		return helper.BodyError(err)
	}

	var out model.OrangTuaModel
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.OrangTuaModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		req := patch.Merge(dto.FromOrangTuaModel(m))
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
	return helper.JsonUpdated(c, "Data orang tua berhasil diperbarui", out)
}

// DELETE /api/orangtua/:ortu_id
func (ctl *OrangTuaController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "ortu_id")
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.OrangTuaModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		return helper.MapDeleteError(tx.Delete(&m).Error, msgInUse)
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Data orang tua berhasil dihapus")
}
