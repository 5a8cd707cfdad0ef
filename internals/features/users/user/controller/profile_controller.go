package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/users/user/dto"
	"armadacheck_backend/internals/features/users/user/service"
	helper "armadacheck_backend/internals/helpers"
	"armadacheck_backend/internals/helpers/authctx"
	"armadacheck_backend/internals/helpers/oss"
)

// MaxProfileImageSize membatasi ukuran foto profil (2 MiB).
const MaxProfileImageSize = 2 << 20

type ProfileController struct {
	Service  *service.UserService
	Blob     oss.BlobService
	Validate *validator.Validate
}

func NewProfileController(db *gorm.DB, blob oss.BlobService) *ProfileController {
	return &ProfileController{
		Service:  service.NewUserService(db),
		Blob:     blob,
		Validate: validator.New(),
	}
}

// Get: GET /api/u/profile
func (ctrl *ProfileController) Get(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}
	user, err := ctrl.Service.GetByID(auth.UserID)
	if err != nil {
		return err
	}
	return helper.Success(c, "Profil user", user)
}

// Update: PUT /api/u/profile
func (ctrl *ProfileController) Update(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Service.UpdateProfile(auth, req)
	if err != nil {
		return err
	}
	return helper.Success(c, "Profil disimpan", user)
}

// ChangePassword: PUT /api/u/profile/password
func (ctrl *ProfileController) ChangePassword(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Service.ChangePassword(auth, req); err != nil {
		return err
	}
	return helper.Success(c, "Password diganti", nil)
}

// UploadImage: POST /api/u/profile/image — multipart field "image".
// Foto lama (bila ada) dibersihkan best-effort setelah yang baru tersimpan.
func (ctrl *ProfileController) UploadImage(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File foto wajib diunggah")
	}
	if !oss.IsImageUpload(fh) {
		return helper.Error(c, fiber.StatusBadRequest, "File harus berupa gambar")
	}
	if fh.Size > MaxProfileImageSize {
		return helper.Error(c, fiber.StatusBadRequest, "Ukuran foto profil maksimal 2MB")
	}

	now := time.Now()
	key := fmt.Sprintf("profiles/%s-%d-%s-%s",
		auth.UserID, now.UnixMilli(), oss.RandHex(4), oss.SanitizeFilename(fh.Filename))

	publicURL, err := ctrl.Blob.UploadFile(c.Context(), key, fh)
	if err != nil {
		return err
	}

	old, err := ctrl.Service.SetProfileImage(auth, &publicURL)
	if err != nil {
		return err
	}
	if old != nil && *old != "" {
		if delErr := ctrl.Blob.DeleteByPublicURL(c.Context(), *old); delErr != nil {
			log.Printf("[ERROR] gagal menghapus foto profil lama %s: %v", *old, delErr)
		}
	}

	return helper.Success(c, "Foto profil disimpan", fiber.Map{"user_image": publicURL})
}

// DeleteImage: DELETE /api/u/profile/image
func (ctrl *ProfileController) DeleteImage(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}

	old, err := ctrl.Service.SetProfileImage(auth, nil)
	if err != nil {
		return err
	}
	if old == nil || *old == "" {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada foto profil")
	}
	if delErr := ctrl.Blob.DeleteByPublicURL(c.Context(), *old); delErr != nil {
		log.Printf("[ERROR] gagal menghapus blob foto profil %s: %v", *old, delErr)
	}
	return helper.Success(c, "Foto profil dihapus", nil)
}
