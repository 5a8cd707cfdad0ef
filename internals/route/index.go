package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/helpers/oss"
	"armadacheck_backend/internals/route/details"
)

// SetupRoutes memasang seluruh route aplikasi:
//
//	/api/auth  : publik (login diproteksi rate limiter khusus)
//	/api/u     : butuh auth, semua role
//	/api/staff : butuh auth + role STAFF
//	/api/admin : butuh auth + role ADMIN
func SetupRoutes(app *fiber.App, db *gorm.DB, blob oss.BlobService) {
	api := app.Group("/api")

	details.AuthRoutes(api, db)
	details.UserRoutes(api, db, blob)
	details.StaffRoutes(api, db, blob)
	details.AdminRoutes(api, db, blob)
}
