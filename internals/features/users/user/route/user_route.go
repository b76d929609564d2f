package route

import (
	"sekolah_backend/internals/features/users/user/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserRoutes: seluruh endpoint akun khusus admin.
func UserRoutes(api fiber.Router, db *gorm.DB, adminOnly fiber.Handler) {
	ctl := controller.NewUserController(db)

	g := api.Group("/users", adminOnly)
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:user_id", ctl.Get)
	g.Put("/:user_id", ctl.Update)
	g.Patch("/:user_id", ctl.Update)
	g.Delete("/:user_id", ctl.Delete)
}
