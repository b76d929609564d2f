package seeds

import (
	"context"

	"sekolah_backend/internals/configs"
	users "sekolah_backend/internals/seeds/users/auth"

	"gorm.io/gorm"
)

// RunAllSeeds dipanggil sekali setelah migrasi; setiap seeder idempotent.
func RunAllSeeds(ctx context.Context, db *gorm.DB, cfg configs.SeedConfig) error {
	//* User
	if _, err := users.SeedAdmin(ctx, db, cfg); err != nil {
		return err
	}
	return nil
}
