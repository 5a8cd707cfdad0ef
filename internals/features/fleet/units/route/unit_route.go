package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/fleet/units/controller"
)

// UnitAdminRoutes didaftarkan di bawah group /api/admin.
func UnitAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUnitController(db)

	units := router.Group("/units")
	units.Get("/", ctrl.List)
	units.Post("/", ctrl.Create)
	units.Get("/:id", ctrl.GetByID)
	units.Put("/:id", ctrl.Update)
	units.Delete("/:id", ctrl.Delete)
	units.Post("/:id/restore", ctrl.Restore)
}
