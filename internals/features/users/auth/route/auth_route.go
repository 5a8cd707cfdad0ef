package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/users/auth/controller"
)

// AuthPublicRoutes didaftarkan di bawah group /api/auth (tanpa auth,
// login dilindungi rate limiter khusus di level route index).
func AuthPublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	router.Post("/login", ctrl.Login)
	router.Post("/logout", ctrl.Logout)
}

// AuthUserRoutes didaftarkan di bawah group /api/u (auth, semua role).
func AuthUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	router.Get("/me", ctrl.Me)
	router.Get("/check-last-login", ctrl.CheckLastLogin)
}
