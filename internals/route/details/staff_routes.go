package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/constants"
	dashboardRoute "armadacheck_backend/internals/features/dashboard/route"
	workcheckRoute "armadacheck_backend/internals/features/inspection/workcheck/route"
	"armadacheck_backend/internals/helpers/oss"
	"armadacheck_backend/internals/middlewares/auth"
)

// StaffRoutes: endpoint /api/staff, khusus role STAFF.
func StaffRoutes(api fiber.Router, db *gorm.DB, blob oss.BlobService) {
	staff := api.Group("/staff",
		auth.AuthMiddleware(db),
		auth.OnlyRoles(constants.ErrOnlyStaffCanAccess, constants.RoleStaff),
	)

	workcheckRoute.WorkcheckStaffRoutes(staff, db, blob)
	dashboardRoute.DashboardStaffRoutes(staff, db)
}
