package route

import (
	"sekolah_backend/internals/features/school/karyawan/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// KaryawanRoutes: baca untuk semua user login, tulis khusus admin.
func KaryawanRoutes(api fiber.Router, db *gorm.DB, adminOnly fiber.Handler) {
	ctl := controller.NewKaryawanController(db)

	g := api.Group("/karyawan")
	g.Get("/", ctl.List)
	g.Get("/count", ctl.Count)
	g.Get("/:karyawan_id", ctl.Get)

	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:karyawan_id", adminOnly, ctl.Update)
	g.Patch("/:karyawan_id", adminOnly, ctl.Update)
	g.Delete("/:karyawan_id", adminOnly, ctl.Delete)
}
