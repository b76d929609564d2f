package route

import (
	"sekolah_backend/internals/features/finance/tagihan/controller"
	"sekolah_backend/internals/features/finance/tagihan/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TagihanRoutes; pembayaran online dipasang terpisah oleh fitur payments.
func TagihanRoutes(api fiber.Router, db *gorm.DB, lc *service.Lifecycle, adminOnly fiber.Handler) {
	ctl := controller.NewTagihanController(db, lc)

	g := api.Group("/tagihan")
	g.Get("/", ctl.List)
	g.Get("/:tagihan_id", ctl.Get)

	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:tagihan_id", adminOnly, ctl.Update)
	g.Patch("/:tagihan_id", adminOnly, ctl.Update)
	g.Delete("/:tagihan_id", adminOnly, ctl.Delete)
}
