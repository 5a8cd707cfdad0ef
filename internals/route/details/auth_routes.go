package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "armadacheck_backend/internals/features/users/auth/route"
	"armadacheck_backend/internals/middlewares"
)

// AuthRoutes: endpoint publik di /api/auth.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	auth := api.Group("/auth")
	auth.Use("/login", middlewares.LoginRateLimiter())
	authRoute.AuthPublicRoutes(auth, db)
}
