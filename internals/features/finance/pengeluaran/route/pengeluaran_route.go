package route

import (
	"sekolah_backend/internals/features/finance/pengeluaran/controller"
	helperStorage "sekolah_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PengeluaranRoutes: tulis cukup login (tanpa admin).
func PengeluaranRoutes(api fiber.Router, db *gorm.DB, blob helperStorage.BlobService, maxUpload int64) {
	ctl := controller.NewPengeluaranController(db, blob, maxUpload)

	g := api.Group("/pengeluaran")
	g.Get("/", ctl.List)
	g.Get("/total", ctl.Total)
	g.Get("/:pengeluaran_id", ctl.Get)

	g.Post("/", ctl.Create)
	g.Put("/:pengeluaran_id", ctl.Update)
	g.Patch("/:pengeluaran_id", ctl.Update)
	g.Delete("/:pengeluaran_id", ctl.Delete)
}
