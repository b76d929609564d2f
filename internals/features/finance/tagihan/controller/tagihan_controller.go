package controller

import (
	"strings"

	"sekolah_backend/internals/constants"
	masterBiaya "sekolah_backend/internals/features/finance/master_biaya/model"
	pemasukan "sekolah_backend/internals/features/finance/pemasukan/model"
	"sekolah_backend/internals/features/finance/tagihan/dto"
	"sekolah_backend/internals/features/finance/tagihan/model"
	"sekolah_backend/internals/features/finance/tagihan/service"
	siswa "sekolah_backend/internals/features/school/siswa/model"
	helper "sekolah_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	msgNotFound      = "Tagihan tidak ditemukan"
	msgInUse         = "Tagihan masih memiliki pemasukan manual"
	msgSiswaNotFound = "siswa_id tidak ditemukan"
	msgBiayaNotFound = "biaya_id tidak ditemukan"
)

type TagihanController struct {
	DB        *gorm.DB
	Lifecycle *service.Lifecycle
}

func NewTagihanController(db *gorm.DB, lc *service.Lifecycle) *TagihanController {
	if lc == nil {
		lc = service.NewLifecycle()
	}
	return &TagihanController{DB: db, Lifecycle: lc}
}

var sortColumns = map[string]string{
	"id":              "tagihan_id",
	"jumlah":          "jumlah",
	"tgl_jatuh_tempo": "tgl_jatuh_tempo",
	"status":          "status",
	"created_at":      "created_at",
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Siswa.Kelas").Preload("Biaya")
}

// GET /api/tagihan?siswa_id=&status=
func (ctl *TagihanController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "id", "asc", helper.DefaultOpts)
	q := ctl.DB.WithContext(c.Context()).Model(&model.TagihanModel{})

	siswaID, err := helper.QueryID(c, "siswa_id")
	if err != nil {
		return err
	}
	if siswaID > 0 {
		q = q.Where("siswa_id = ?", siswaID)
	}
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		st = constants.NormalizeStatus(st)
		if st != constants.StatusLunas && st != constants.StatusBelumLunas {
			return helper.InvalidFormat("status", `Status harus "lunas" atau "belum_lunas"`)
		}
		q = q.Where("status = ?", st)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}
	var rows []model.TagihanModel
	if err := withRelations(p.Apply(q, sortColumns, "id")).Find(&rows).Error; err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonList(c, "Daftar tagihan", rows, total, helper.BuildMeta(total, p))
}

// GET /api/tagihan/:tagihan_id
func (ctl *TagihanController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "tagihan_id")
	if err != nil {
		return err
	}
	m, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail tagihan", m)
}

func (ctl *TagihanController) load(db *gorm.DB, id uint) (*model.TagihanModel, error) {
	var m model.TagihanModel
	if err := withRelations(db).First(&m, id).Error; err != nil {
		return nil, helper.NotFoundOr(err, msgNotFound)
	}
	return &m, nil
}

func ensureRefs(tx *gorm.DB, req dto.TagihanRequest) error {
	if err := helper.EnsureRef(tx, &siswa.SiswaModel{}, req.SiswaID.Uint(), "siswa_id", msgSiswaNotFound); err != nil {
		return err
	}
	return helper.EnsureRef(tx, &masterBiaya.MasterBiayaModel{}, req.BiayaID.Uint(), "biaya_id", msgBiayaNotFound)
}

// POST /api/tagihan
func (ctl *TagihanController) Create(c *fiber.Ctx) error {
	var req dto.TagihanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyError(err)
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var m model.TagihanModel
	err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureRefs(tx, req); err != nil {
			return err
		}
		req.ApplyTo(&m)
		if err := helper.MapWriteError(tx.Omit("Siswa", "Biaya").Create(&m).Error); err != nil {
			return err
		}
		return ctl.Lifecycle.Transition(tx, "", &m, service.DefaultSettlement)
	})
	if err != nil {
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), m.TagihanID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Tagihan berhasil dibuat", out)
}

// PUT|PATCH /api/tagihan/:tagihan_id
func (ctl *TagihanController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "tagihan_id")
	if err != nil {
		return err
	}
	var patch dto.TagihanPatch
	if err := c.BodyParser(&patch); err != nil {
		return helper.BodyError(err)
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.TagihanModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		prevStatus := m.Status

		req := patch.Merge(dto.FromTagihanModel(m))
		req.Normalize()
		if err := helper.ValidateStruct(req); err != nil {
			return err
		}
		if err := ensureRefs(tx, req); err != nil {
			return err
		}
		req.ApplyTo(&m)
		if err := helper.MapWriteError(tx.Omit("Siswa", "Biaya").Save(&m).Error); err != nil {
			return err
		}
		return ctl.Lifecycle.Transition(tx, prevStatus, &m, service.DefaultSettlement)
	})
	if err != nil {
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Tagihan berhasil diperbarui", out)
}

// DELETE /api/tagihan/:tagihan_id
// Pemasukan hasil lifecycle ikut terhapus; pemasukan manual menahan penghapusan.
func (ctl *TagihanController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "tagihan_id")
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.TagihanModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		if err := tx.Where("tagihan_id = ? AND sumber <> ?", m.TagihanID, constants.SumberManual).
			Delete(&pemasukan.PemasukanModel{}).Error; err != nil {
			return helper.Unexpected(err)
		}
		return helper.MapDeleteError(tx.Delete(&m).Error, msgInUse)
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Tagihan berhasil dihapus")
}
