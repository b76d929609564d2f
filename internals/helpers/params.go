package helper

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ParamID: id integer dari path (mis. :tagihan_id).
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Params(name))
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, InvalidFormat(name, name+" tidak valid")
	}
	return uint(n), nil
}

// QueryID: filter opsional ?x_id=; (0, nil) kalau tidak dikirim.
func QueryID(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, InvalidFormat(name, name+" tidak valid")
	}
	return uint(n), nil
}

// NotFoundOr: ErrRecordNotFound → NotFound(msg), error lain → Unexpected.
func NotFoundOr(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(msg)
	}
	return Unexpected(err)
}

// ForShare / ForUpdate: row lock di dalam transaksi (Postgres). SQLite mengabaikannya.
func ForShare(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "SHARE"})
}

func ForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// EnsureRef memastikan baris referensi ada dan menguncinya FOR SHARE sampai commit.
func EnsureRef(tx *gorm.DB, dst any, id uint, field, msg string) error {
	if id == 0 {
		return MissingField(field, field+" wajib diisi")
	}
	err := ForShare(tx).First(dst, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ReferenceNotFound(field, msg)
	}
	if err != nil {
		return Unexpected(err)
	}
	return nil
}

// BodyError: body gagal di-parse.
func BodyError(err error) error {
	return &AppError{Kind: KindInvalidFormat, Message: "Format body request tidak valid", Err: err}
}
