package route

import (
	"sekolah_backend/internals/features/school/orang_tua/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func OrangTuaRoutes(api fiber.Router, db *gorm.DB, adminOnly fiber.Handler) {
	ctl := controller.NewOrangTuaController(db)

	g := api.Group("/orangtua")
	g.Get("/", ctl.List)
	g.Get("/:ortu_id", ctl.Get)

	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:ortu_id", adminOnly, ctl.Update)
	g.Patch("/:ortu_id", adminOnly, ctl.Update)
	g.Delete("/:ortu_id", adminOnly, ctl.Delete)
}
