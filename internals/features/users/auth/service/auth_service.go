package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"armadacheck_backend/internals/configs"
	"armadacheck_backend/internals/features/users/auth/dto"
	userModel "armadacheck_backend/internals/features/users/user/model"
)

// TokenTTL adalah umur access token.
const TokenTTL = 24 * time.Hour

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Login memverifikasi kredensial dan menerbitkan JWT HS256. Kredensial salah
// selalu dijawab 401 dengan pesan yang sama, akun nonaktif 403.
func (s *AuthService) Login(req dto.LoginRequest, now time.Time) (string, *userModel.UserModel, error) {
	var user userModel.UserModel
	err := s.DB.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
		}
		return "", nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa kredensial")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return "", nil, fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
	}
	if !user.IsActive {
		return "", nil, fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	token, err := s.issueToken(&user, now)
	if err != nil {
		log.Printf("[ERROR] gagal menerbitkan token untuk %s: %v", user.Username, err)
		return "", nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menerbitkan token")
	}

	if err := s.DB.Model(&userModel.UserModel{}).
		Where("id = ?", user.ID).
		Update("last_login", now).Error; err != nil {
		log.Printf("[ERROR] gagal mencatat last_login %s: %v", user.Username, err)
	}
	user.LastLogin = &now

	return token, &user, nil
}

func (s *AuthService) issueToken(user *userModel.UserModel, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"role":      user.Role,
		"user_name": user.Username,
		"iat":       now.Unix(),
		"exp":       now.Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// Me mengambil profil user yang sedang login.
func (s *AuthService) Me(userID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil profil")
	}
	return &user, nil
}
