package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/users/user/controller"
	"armadacheck_backend/internals/helpers/oss"
)

// UserAdminRoutes didaftarkan di bawah group /api/admin.
func UserAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserAdminController(db)

	users := router.Group("/users")
	users.Get("/", ctrl.List)
	users.Post("/", ctrl.Create)
	users.Get("/:id", ctrl.GetByID)
	users.Put("/:id", ctrl.Update)
	users.Delete("/:id", ctrl.Delete)
	users.Post("/:id/toggle-status", ctrl.ToggleStatus)
}

// ProfileRoutes didaftarkan di bawah group /api/u (auth, semua role).
func ProfileRoutes(router fiber.Router, db *gorm.DB, blob oss.BlobService) {
	ctrl := controller.NewProfileController(db, blob)

	profile := router.Group("/profile")
	profile.Get("/", ctrl.Get)
	profile.Put("/", ctrl.Update)
	profile.Put("/password", ctrl.ChangePassword)
	profile.Post("/image", ctrl.UploadImage)
	profile.Delete("/image", ctrl.DeleteImage)
}
