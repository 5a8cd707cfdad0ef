package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "armadacheck_backend/internals/features/users/auth/route"
	userRoute "armadacheck_backend/internals/features/users/user/route"
	"armadacheck_backend/internals/helpers/oss"
	"armadacheck_backend/internals/middlewares/auth"
)

// UserRoutes: endpoint /api/u untuk semua user yang login, tanpa syarat role.
func UserRoutes(api fiber.Router, db *gorm.DB, blob oss.BlobService) {
	u := api.Group("/u", auth.AuthMiddleware(db))

	authRoute.AuthUserRoutes(u, db)
	userRoute.ProfileRoutes(u, db, blob)
}
