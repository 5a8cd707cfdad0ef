package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/inspection/export/controller"
)

// ExportAdminRoutes didaftarkan di bawah group /api/admin.
func ExportAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewExportController(db)
	router.Get("/export/workchecks", ctrl.Export)
}
