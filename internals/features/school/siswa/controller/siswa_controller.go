package controller

import (
	kelas "sekolah_backend/internals/features/school/kelas/model"
	orangTua "sekolah_backend/internals/features/school/orang_tua/model"
	"sekolah_backend/internals/features/school/siswa/dto"
	"sekolah_backend/internals/features/school/siswa/model"
	helper "sekolah_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	msgNotFound      = "Siswa tidak ditemukan"
	msgInUse         = "Siswa masih memiliki tagihan"
	msgKelasNotFound = "kelas_id tidak ditemukan"
	msgOrtuNotFound  = "ortu_id tidak ditemukan"
)

type SiswaController struct {
	DB *gorm.DB
}

func NewSiswaController(db *gorm.DB) *SiswaController {
	return &SiswaController{DB: db}
}

var sortColumns = map[string]string{
	"id":         "siswa_id",
	"nama":       "nama",
	"kelas_id":   "kelas_id",
	"created_at": "created_at",
}

func (ctl *SiswaController) filtered(c *fiber.Ctx) (*gorm.DB, error) {
	q := ctl.DB.WithContext(c.Context()).Model(&model.SiswaModel{})
	ortuID, err := helper.QueryID(c, "ortu_id")
	if err != nil {
		return nil, err
	}
	if ortuID > 0 {
		q = q.Where("ortu_id = ?", ortuID)
	}
	kelasID, err := helper.QueryID(c, "kelas_id")
	if err != nil {
		return nil, err
	}
	if kelasID > 0 {
		q = q.Where("kelas_id = ?", kelasID)
	}
	return q.Session(&gorm.Session{}), nil
}

// GET /api/siswa?ortu_id=&kelas_id=
func (ctl *SiswaController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "id", "asc", helper.DefaultOpts)
	q, err := ctl.filtered(c)
	if err != nil {
		return err
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}
	var rows []model.SiswaModel
	if err := p.Apply(q, sortColumns, "id").Preload("Ortu").Preload("Kelas").Find(&rows).Error; err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonList(c, "Daftar siswa", rows, total, helper.BuildMeta(total, p))
}

// GET /api/siswa/count
func (ctl *SiswaController) Count(c *fiber.Ctx) error {
	q, err := ctl.filtered(c)
	if err != nil {
		return err
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonTotal(c, "Total siswa", total)
}

// GET /api/siswa/:siswa_id
func (ctl *SiswaController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "siswa_id")
	if err != nil {
		return err
	}
	m, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail siswa", m)
}

func (ctl *SiswaController) load(db *gorm.DB, id uint) (*model.SiswaModel, error) {
	var m model.SiswaModel
	if err := db.Preload("Ortu").Preload("Kelas").First(&m, id).Error; err != nil {
		return nil, helper.NotFoundOr(err, msgNotFound)
	}
	return &m, nil
}

// ensureRefs: kelas & orang tua harus ada, dikunci sampai commit.
func ensureRefs(tx *gorm.DB, req dto.SiswaRequest) error {
	var k kelas.KelasModel
	if err := helper.EnsureRef(tx, &k, req.KelasID.Uint(), "kelas_id", msgKelasNotFound); err != nil {
		return err
	}
	var o orangTua.OrangTuaModel
	return helper.EnsureRef(tx, &o, req.OrtuID.Uint(), "ortu_id", msgOrtuNotFound)
}

// POST /api/siswa
func (ctl *SiswaController) Create(c *fiber.Ctx) error {
	var req dto.SiswaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyError(err)
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var m model.SiswaModel
	err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureRefs(tx, req); err != nil {
			return err
		}
		req.ApplyTo(&m)
		return helper.MapWriteError(tx.Omit("Kelas", "Ortu").Create(&m).Error)
	})
	if err != nil {
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), m.SiswaID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Siswa berhasil dibuat", out)
}

// PUT|PATCH /api/siswa/:siswa_id
func (ctl *SiswaController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "siswa_id")
	if err != nil {
		return err
	}
	var patch dto.SiswaPatch
	if err := c.BodyParser(&patch); err != nil {
		return helper.BodyError(err)
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.SiswaModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		req := patch.Merge(dto.FromSiswaModel(m))
		req.Normalize()
		if err := helper.ValidateStruct(req); err != nil {
			return err
		}
		if err := ensureRefs(tx, req); err != nil {
			return err
		}
		req.ApplyTo(&m)
		return helper.MapWriteError(tx.Omit("Kelas", "Ortu").Save(&m).Error)
	})
	if err != nil {
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Siswa berhasil diperbarui", out)
}

// DELETE /api/siswa/:siswa_id
func (ctl *SiswaController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "siswa_id")
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.SiswaModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		return helper.MapDeleteError(tx.Delete(&m).Error, msgInUse)
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Siswa berhasil dihapus")
}
