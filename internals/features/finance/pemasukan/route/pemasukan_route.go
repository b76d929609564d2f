package route

import (
	"sekolah_backend/internals/features/finance/pemasukan/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func PemasukanRoutes(api fiber.Router, db *gorm.DB, adminOnly fiber.Handler) {
	ctl := controller.NewPemasukanController(db)

	g := api.Group("/pemasukan")
	g.Get("/", ctl.List)
	g.Get("/total", ctl.Total)
	g.Get("/:pemasukan_id", ctl.Get)

	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:pemasukan_id", adminOnly, ctl.Update)
	g.Patch("/:pemasukan_id", adminOnly, ctl.Update)
	g.Delete("/:pemasukan_id", adminOnly, ctl.Delete)
}
