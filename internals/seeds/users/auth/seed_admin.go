package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"sekolah_backend/internals/configs"
	"sekolah_backend/internals/constants"
	authService "sekolah_backend/internals/features/users/auth/service"
	user "sekolah_backend/internals/features/users/user/model"

	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// SeedAdmin membuat admin pertama kalau SEED_ADMIN_* diisi dan username belum ada.
// Mengembalikan true kalau baris baru dibuat.
func SeedAdmin(ctx context.Context, db *gorm.DB, cfg configs.SeedConfig) (bool, error) {
	username := strings.TrimSpace(cfg.AdminUsername)
	if username == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	var existing user.UserModel
	err := db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		if existing.Role != constants.RoleAdmin {
			log.Printf("[WARN] seed admin: username %q sudah dipakai role %s", username, existing.Role)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, pkgErrors.Wrap(err, "seed admin: cek username")
	}

	hash, err := authService.HashPassword(cfg.AdminPassword)
	if err != nil {
		return false, pkgErrors.Wrap(err, "seed admin: hash password")
	}
	admin := user.UserModel{Username: username, Password: hash, Role: constants.RoleAdmin}
	if err := db.WithContext(ctx).Omit("Siswa", "Ortu", "Karyawan").Create(&admin).Error; err != nil {
		return false, pkgErrors.Wrap(err, "seed admin: insert")
	}
	log.Printf("[INFO] Admin awal %q dibuat", username)
	return true, nil
}
