package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/constants"
	dashboardRoute "armadacheck_backend/internals/features/dashboard/route"
	checkItemRoute "armadacheck_backend/internals/features/fleet/check_items/route"
	unitRoute "armadacheck_backend/internals/features/fleet/units/route"
	exportRoute "armadacheck_backend/internals/features/inspection/export/route"
	workcheckRoute "armadacheck_backend/internals/features/inspection/workcheck/route"
	userRoute "armadacheck_backend/internals/features/users/user/route"
	"armadacheck_backend/internals/helpers/oss"
	"armadacheck_backend/internals/middlewares/auth"
)

// AdminRoutes: endpoint /api/admin, khusus role ADMIN.
func AdminRoutes(api fiber.Router, db *gorm.DB, blob oss.BlobService) {
	admin := api.Group("/admin",
		auth.AuthMiddleware(db),
		auth.OnlyRoles(constants.ErrOnlyAdminCanAccess, constants.RoleAdmin),
	)

	workcheckRoute.WorkcheckAdminRoutes(admin, db, blob)
	unitRoute.UnitAdminRoutes(admin, db)
	checkItemRoute.CheckItemAdminRoutes(admin, db)
	userRoute.UserAdminRoutes(admin, db)
	dashboardRoute.DashboardAdminRoutes(admin, db)
	exportRoute.ExportAdminRoutes(admin, db)
}
