package controller

import (
	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/finance/pemasukan/dto"
	"sekolah_backend/internals/features/finance/pemasukan/model"
	tagihan "sekolah_backend/internals/features/finance/tagihan/model"
	helper "sekolah_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgNotFound        = "Pemasukan tidak ditemukan"
	msgTagihanNotFound = "tagihan_id tidak ditemukan"
)

type PemasukanController struct {
	DB *gorm.DB
}

func NewPemasukanController(db *gorm.DB) *PemasukanController {
	return &PemasukanController{DB: db}
}

var sortColumns = map[string]string{
	"id":           "pemasukan_id",
	"tgl_bayar":    "tgl_bayar",
	"jumlah_bayar": "jumlah_bayar",
	"created_at":   "created_at",
}

func (ctl *PemasukanController) filtered(c *fiber.Ctx) (*gorm.DB, error) {
	q := ctl.DB.WithContext(c.Context()).Model(&model.PemasukanModel{})
	tagihanID, err := helper.QueryID(c, "tagihan_id")
	if err != nil {
		return nil, err
	}
	if tagihanID > 0 {
		q = q.Where("tagihan_id = ?", tagihanID)
	}
	return q.Session(&gorm.Session{}), nil
}

// GET /api/pemasukan?tagihan_id=
func (ctl *PemasukanController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "id", "asc", helper.DefaultOpts)
	q, err := ctl.filtered(c)
	if err != nil {
		return err
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}
	var rows []model.PemasukanModel
	if err := p.Apply(q, sortColumns, "id").Preload("Tagihan").Find(&rows).Error; err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonList(c, "Daftar pemasukan", rows, total, helper.BuildMeta(total, p))
}

// GET /api/pemasukan/total
func (ctl *PemasukanController) Total(c *fiber.Ctx) error {
	q, err := ctl.filtered(c)
	if err != nil {
		return err
	}
	var sum decimal.Decimal
	if err := q.Select("COALESCE(SUM(jumlah_bayar), 0)").Row().Scan(&sum); err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonTotal(c, "Total pemasukan", sum.Round(2))
}

// GET /api/pemasukan/:pemasukan_id
func (ctl *PemasukanController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "pemasukan_id")
	if err != nil {
		return err
	}
	m, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail pemasukan", m)
}

func (ctl *PemasukanController) load(db *gorm.DB, id uint) (*model.PemasukanModel, error) {
	var m model.PemasukanModel
	if err := db.Preload("Tagihan").First(&m, id).Error; err != nil {
		return nil, helper.NotFoundOr(err, msgNotFound)
	}
	return &m, nil
}

func ensureTagihan(tx *gorm.DB, req dto.PemasukanRequest) error {
	return helper.EnsureRef(tx, &tagihan.TagihanModel{}, req.TagihanID.Uint(), "tagihan_id", msgTagihanNotFound)
}

// POST /api/pemasukan
func (ctl *PemasukanController) Create(c *fiber.Ctx) error {
	var req dto.PemasukanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyError(err)
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	m := model.PemasukanModel{Sumber: constants.SumberManual}
	err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureTagihan(tx, req); err != nil {
			return err
		}
		req.ApplyTo(&m)
		return helper.MapWriteError(tx.Omit("Tagihan").Create(&m).Error)
	})
	if err != nil {
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), m.PemasukanID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Pemasukan berhasil dibuat", out)
}

// PUT|PATCH /api/pemasukan/:pemasukan_id
func (ctl *PemasukanController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "pemasukan_id")
	if err != nil {
		return err
	}
	var patch dto.PemasukanPatch
	if err := c.BodyParser(&patch); err != nil {
		return helper.BodyError(err)
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.PemasukanModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		req := patch.Merge(dto.FromPemasukanModel(m))
		req.Normalize()
		if err := helper.ValidateStruct(req); err != nil {
			return err
		}
		if err := ensureTagihan(tx, req); err != nil {
			return err
		}
		req.ApplyTo(&m)
		return helper.MapWriteError(tx.Omit("Tagihan").Save(&m).Error)
	})
	if err != nil {
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Pemasukan berhasil diperbarui", out)
}

// DELETE /api/pemasukan/:pemasukan_id
func (ctl *PemasukanController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "pemasukan_id")
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.PemasukanModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		return helper.MapWriteError(tx.Delete(&m).Error)
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Pemasukan berhasil dihapus")
}
