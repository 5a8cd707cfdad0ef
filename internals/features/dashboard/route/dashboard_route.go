package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/dashboard/controller"
)

// DashboardAdminRoutes didaftarkan di bawah group /api/admin.
func DashboardAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDashboardController(db)
	router.Get("/dashboard", ctrl.AdminMetrics)
}

// DashboardStaffRoutes didaftarkan di bawah group /api/staff.
func DashboardStaffRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDashboardController(db)
	router.Get("/dashboard", ctrl.StaffMetrics)
}
