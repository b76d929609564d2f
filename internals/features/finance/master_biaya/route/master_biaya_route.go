package route

import (
	"sekolah_backend/internals/features/finance/master_biaya/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func MasterBiayaRoutes(api fiber.Router, db *gorm.DB, adminOnly fiber.Handler) {
	ctl := controller.NewMasterBiayaController(db)

	g := api.Group("/masterbiaya")
	g.Get("/", ctl.List)
	g.Get("/:biaya_id", ctl.Get)

	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:biaya_id", adminOnly, ctl.Update)
	g.Patch("/:biaya_id", adminOnly, ctl.Update)
	g.Delete("/:biaya_id", adminOnly, ctl.Delete)
}
