package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/fleet/check_items/controller"
)

// CheckItemAdminRoutes didaftarkan di bawah group /api/admin.
func CheckItemAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCheckItemController(db)

	items := router.Group("/check-items")
	items.Get("/", ctrl.List)
	items.Post("/", ctrl.Create)
	items.Put("/:id/move", ctrl.Move)
	items.Put("/:id", ctrl.Update)
	items.Delete("/:id", ctrl.Delete)
}
