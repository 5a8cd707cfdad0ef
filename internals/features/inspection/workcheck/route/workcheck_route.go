package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/inspection/workcheck/controller"
	"armadacheck_backend/internals/helpers/oss"
)

// WorkcheckStaffRoutes didaftarkan di bawah group /api/staff (sudah lewat
// auth + role STAFF).
func WorkcheckStaffRoutes(router fiber.Router, db *gorm.DB, blob oss.BlobService) {
	ctrl := controller.NewWorkcheckController(db, blob)

	wc := router.Group("/workchecks")
	wc.Get("/today", ctrl.GetToday)
	wc.Get("/history", ctrl.History)
	wc.Post("/", ctrl.Create)
	wc.Post("/submit", ctrl.Submit)
	wc.Put("/hours-meter", ctrl.UpdateHoursMeter)
	wc.Put("/items", ctrl.UpdateItem)
	wc.Post("/items/:itemId/image", ctrl.UploadItemImage)
	wc.Delete("/items/:itemId/image", ctrl.DeleteItemImage)
	wc.Get("/:id", ctrl.GetByID)
}

// WorkcheckAdminRoutes didaftarkan di bawah group /api/admin.
func WorkcheckAdminRoutes(router fiber.Router, db *gorm.DB, blob oss.BlobService) {
	approvalCtrl := controller.NewApprovalController(db)
	wcCtrl := controller.NewWorkcheckController(db, blob)

	wc := router.Group("/workchecks")
	wc.Get("/", approvalCtrl.List)
	wc.Post("/decision", approvalCtrl.Decide)
	wc.Get("/:id", wcCtrl.GetByID)
}
