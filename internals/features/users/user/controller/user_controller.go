package controller

import (
	"errors"

	"sekolah_backend/internals/constants"
	karyawan "sekolah_backend/internals/features/school/karyawan/model"
	orangTua "sekolah_backend/internals/features/school/orang_tua/model"
	siswa "sekolah_backend/internals/features/school/siswa/model"
	"sekolah_backend/internals/features/users/auth/service"
	"sekolah_backend/internals/features/users/user/dto"
	"sekolah_backend/internals/features/users/user/model"
	helper "sekolah_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	msgNotFound      = "Pengguna tidak ditemukan"
	msgUsernameTaken = "Username sudah digunakan"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

var sortColumns = map[string]string{
	"id":         "user_id",
	"username":   "username",
	"role":       "role",
	"created_at": "created_at",
}

func withProfile(db *gorm.DB) *gorm.DB {
	return db.Preload("Siswa").Preload("Ortu").Preload("Karyawan")
}

// GET /api/users?role=
func (ctl *UserController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "id", "asc", helper.DefaultOpts)
	q := ctl.DB.WithContext(c.Context()).Model(&model.UserModel{})
	if raw := c.Query("role"); raw != "" {
		role, ok := constants.ParseRole(raw)
		if !ok {
			return helper.InvalidFormat("role", "Role tidak valid")
		}
		q = q.Where("role = ?", role)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}
	var rows []model.UserModel
	if err := withProfile(p.Apply(q, sortColumns, "id")).Find(&rows).Error; err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonList(c, "Daftar pengguna", rows, total, helper.BuildMeta(total, p))
}

// GET /api/users/:user_id
func (ctl *UserController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "user_id")
	if err != nil {
		return err
	}
	m, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail pengguna", m)
}

func (ctl *UserController) load(db *gorm.DB, id uint) (*model.UserModel, error) {
	var m model.UserModel
	if err := withProfile(db).First(&m, id).Error; err != nil {
		return nil, helper.NotFoundOr(err, msgNotFound)
	}
	return &m, nil
}

// ensureProfile: profil yang dirujuk binding harus ada, dikunci sampai commit.
func ensureProfile(tx *gorm.DB, b model.RoleBinding) error {
	id, ok := b.ProfileID()
	if !ok {
		return nil
	}
	field := b.ProfileField()
	msg := field + " tidak ditemukan"
	switch field {
	case model.FieldSiswaID:
		return helper.EnsureRef(tx, &siswa.SiswaModel{}, id, field, msg)
	case model.FieldOrtuID:
		return helper.EnsureRef(tx, &orangTua.OrangTuaModel{}, id, field, msg)
	default:
		return helper.EnsureRef(tx, &karyawan.KaryawanModel{}, id, field, msg)
	}
}

func ensureUsernameFree(tx *gorm.DB, username string, exceptID uint) error {
	var n int64
	if err := tx.Model(&model.UserModel{}).
		Where("username = ? AND user_id <> ?", username, exceptID).
		Count(&n).Error; err != nil {
		return helper.Unexpected(err)
	}
	if n > 0 {
		return helper.Conflict(msgUsernameTaken)
	}
	return nil
}

// mapUserWrite: unique violation pada username jadi pesan yang jelas.
func mapUserWrite(err error) error {
	err = helper.MapWriteError(err)
	var ae *helper.AppError
	if errors.As(err, &ae) && ae.Kind == helper.KindConflict {
		return helper.Conflict(msgUsernameTaken)
	}
	return err
}

// POST /api/users
func (ctl *UserController) Create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyError(err)
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}
	binding, err := req.Binding()
	if err != nil {
		return err
	}
	hash, err := service.HashPassword(req.Password)
	if err != nil {
		return helper.Unexpected(err)
	}

	m := model.UserModel{Username: req.Username, Password: hash}
	m.Bind(binding)
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureProfile(tx, binding); err != nil {
			return err
		}
		if err := ensureUsernameFree(tx, m.Username, 0); err != nil {
			return err
		}
		return mapUserWrite(tx.Omit("Siswa", "Ortu", "Karyawan").Create(&m).Error)
	})
	if err != nil {
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), m.UserID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Pengguna berhasil dibuat", out)
}

// PUT|PATCH /api/users/:user_id
func (ctl *UserController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "user_id")
	if err != nil {
		return err
	}
	var patch dto.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return helper.BodyError(err)
	}
	if err := patch.CheckPassword(); err != nil {
		return err
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.UserModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		req := patch.Merge(dto.FromUserModel(m))
		req.Normalize()
		if err := helper.ValidateStruct(req); err != nil {
			return err
		}
		binding, err := req.Binding()
		if err != nil {
			return err
		}
		if err := ensureProfile(tx, binding); err != nil {
			return err
		}
		if err := ensureUsernameFree(tx, req.Username, m.UserID); err != nil {
			return err
		}

		m.Username = req.Username
		m.Bind(binding)
		if req.Password != "" {
			hash, err := service.HashPassword(req.Password)
			if err != nil {
				return helper.Unexpected(err)
			}
			m.Password = hash
		}
		return mapUserWrite(tx.Omit("Siswa", "Ortu", "Karyawan").Save(&m).Error)
	})
	if err != nil {
		return err
	}

	out, err := ctl.load(ctl.DB.WithContext(c.Context()), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Pengguna berhasil diperbarui", out)
}

// DELETE /api/users/:user_id
func (ctl *UserController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "user_id")
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.UserModel
		if err := helper.ForUpdate(tx).First(&m, id).Error; err != nil {
			return helper.NotFoundOr(err, msgNotFound)
		}
		return helper.MapDeleteError(tx.Delete(&m).Error, "Pengguna masih tercatat pada pengeluaran")
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Pengguna berhasil dihapus")
}
