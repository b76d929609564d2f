package route

import (
	"sekolah_backend/internals/features/school/kelas/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func KelasRoutes(api fiber.Router, db *gorm.DB, adminOnly fiber.Handler) {
	ctl := controller.NewKelasController(db)

	g := api.Group("/kelas")
	g.Get("/", ctl.List)
	g.Get("/:kelas_id", ctl.Get)

	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:kelas_id", adminOnly, ctl.Update)
	g.Patch("/:kelas_id", adminOnly, ctl.Update)
	g.Delete("/:kelas_id", adminOnly, ctl.Delete)
}
