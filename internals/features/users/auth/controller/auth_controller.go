package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/users/auth/dto"
	"armadacheck_backend/internals/features/users/auth/service"
	userModel "armadacheck_backend/internals/features/users/user/model"
	helper "armadacheck_backend/internals/helpers"
	"armadacheck_backend/internals/helpers/authctx"
)

type AuthController struct {
	Service  *service.AuthService
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		Service:  service.NewAuthService(db),
		Validate: validator.New(),
	}
}

func toUserInfo(u *userModel.UserModel) dto.UserInfo {
	return dto.UserInfo{
		ID:          u.ID.String(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Username:    u.Username,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		UserImage:   u.UserImage,
		LastLogin:   u.LastLogin,
	}
}

// Login: POST /api/auth/login
// Token dikirim dua arah: cookie httpOnly untuk browser dan body untuk client
// mobile yang memakai header Authorization.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	now := time.Now()
	token, user, err := ctrl.Service.Login(req, now)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  now.Add(service.TokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return helper.Success(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		User:        toUserInfo(user),
	})
}

// Logout: POST /api/auth/logout — cukup mematikan cookie; token stateless.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return helper.Success(c, "Logout berhasil", nil)
}

// Me: GET /api/u/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}
	user, err := ctrl.Service.Me(auth.UserID.String())
	if err != nil {
		return err
	}
	return helper.Success(c, "Profil user", toUserInfo(user))
}

// CheckLastLogin: GET /api/u/check-last-login — frontend memakai ini untuk
// mendeteksi user baru yang belum pernah login (wajib ganti password).
func (ctrl *AuthController) CheckLastLogin(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}
	user, err := ctrl.Service.Me(auth.UserID.String())
	if err != nil {
		return err
	}
	return helper.Success(c, "Status last login", fiber.Map{
		"has_logged_in": user.LastLogin != nil,
		"last_login":    user.LastLogin,
	})
}
