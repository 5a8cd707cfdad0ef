package service

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/users/user/dto"
	"armadacheck_backend/internals/features/users/user/model"
	helper "armadacheck_backend/internals/helpers"
	"armadacheck_backend/internals/helpers/authctx"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// List mengembalikan user untuk halaman admin, dengan pencarian nama/username.
func (s *UserService) List(search, role string, paging helper.Paging) ([]model.UserModel, int64, error) {
	filtered := func(tx *gorm.DB) *gorm.DB {
		if q := strings.TrimSpace(search); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			tx = tx.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(username) LIKE ?", like, like, like)
		}
		if role != "" {
			tx = tx.Where("role = ?", role)
		}
		return tx
	}

	var total int64
	if err := s.DB.Model(&model.UserModel{}).Scopes(filtered).Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung user")
	}

	var users []model.UserModel
	if err := s.DB.Model(&model.UserModel{}).Scopes(filtered).
		Order("first_name ASC, last_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar user")
	}
	return users, total, nil
}

func (s *UserService) GetByID(id uuid.UUID) (*model.UserModel, error) {
	var user model.UserModel
	if err := s.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil user")
	}
	return &user, nil
}

func (s *UserService) Create(req dto.CreateUserRequest) (*model.UserModel, error) {
	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := model.UserModel{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Username:    strings.ToLower(strings.TrimSpace(req.Username)),
		Password:    hashed,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		IsActive:    true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Username sudah dipakai")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat user")
	}
	return &user, nil
}

func (s *UserService) Update(id uuid.UUID, req dto.UpdateUserRequest) (*model.UserModel, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Username != nil {
		updates["username"] = strings.ToLower(strings.TrimSpace(*req.Username))
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = req.PhoneNumber
	}
	if req.Password != nil {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses password")
		}
		updates["password"] = hashed
	}
	if len(updates) == 0 {
		return s.GetByID(id)
	}

	if err := s.DB.Model(&model.UserModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Username sudah dipakai")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan user")
	}
	return s.GetByID(id)
}

// ToggleStatus membalik is_active. Admin tidak boleh menonaktifkan dirinya
// sendiri supaya tidak mengunci akses.
func (s *UserService) ToggleStatus(auth authctx.AuthContext, id uuid.UUID) (*model.UserModel, error) {
	if auth.UserID == id {
		return nil, fiber.NewError(fiber.StatusForbidden, "Tidak bisa menonaktifkan akun sendiri")
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("is_active", !user.IsActive).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengubah status user")
	}
	return s.GetByID(id)
}

// Delete menghapus user. Self-delete ditolak. User yang masih dirujuk
// workcheck ditahan FK checker_id; pelanggarannya diterjemahkan jadi 409.
func (s *UserService) Delete(auth authctx.AuthContext, id uuid.UUID) error {
	if auth.UserID == id {
		return fiber.NewError(fiber.StatusForbidden, "Tidak bisa menghapus akun sendiri")
	}
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	if err := s.DB.Delete(&model.UserModel{}, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fiber.NewError(fiber.StatusConflict, "User punya riwayat workcheck; nonaktifkan saja")
		}
		log.Printf("[ERROR] gagal menghapus user %s: %v", id, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus user")
	}
	return nil
}

// UpdateProfile dipakai user terhadap datanya sendiri.
func (s *UserService) UpdateProfile(auth authctx.AuthContext, req dto.UpdateProfileRequest) (*model.UserModel, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = req.PhoneNumber
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&model.UserModel{}).
			Where("id = ?", auth.UserID).
			Updates(updates).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan profil")
		}
	}
	return s.GetByID(auth.UserID)
}

// ChangePassword memverifikasi password lama sebelum mengganti.
func (s *UserService) ChangePassword(auth authctx.AuthContext, req dto.ChangePasswordRequest) error {
	user, err := s.GetByID(auth.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Password lama salah")
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses password")
	}
	if err := s.DB.Model(&model.UserModel{}).
		Where("id = ?", auth.UserID).
		Update("password", hashed).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengganti password")
	}
	return nil
}

// SetProfileImage menyimpan URL foto profil baru dan mengembalikan URL lama
// (bila ada) supaya caller bisa membersihkan blob-nya.
func (s *UserService) SetProfileImage(auth authctx.AuthContext, publicURL *string) (*string, error) {
	user, err := s.GetByID(auth.UserID)
	if err != nil {
		return nil, err
	}
	old := user.UserImage

	if err := s.DB.Model(&model.UserModel{}).
		Where("id = ?", auth.UserID).
		Update("user_image", publicURL).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan foto profil")
	}
	return old, nil
}
