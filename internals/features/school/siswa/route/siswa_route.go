package route

import (
	"sekolah_backend/internals/features/school/siswa/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SiswaRoutes(api fiber.Router, db *gorm.DB, adminOnly fiber.Handler) {
	ctl := controller.NewSiswaController(db)

	g := api.Group("/siswa")
	g.Get("/", ctl.List)
	g.Get("/count", ctl.Count)
	g.Get("/:siswa_id", ctl.Get)

	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:siswa_id", adminOnly, ctl.Update)
	g.Patch("/:siswa_id", adminOnly, ctl.Update)
	g.Delete("/:siswa_id", adminOnly, ctl.Delete)
}
