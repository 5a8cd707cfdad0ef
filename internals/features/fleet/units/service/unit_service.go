package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/fleet/units/dto"
	"armadacheck_backend/internals/features/fleet/units/model"
)

type UnitService struct {
	DB *gorm.DB
}

func NewUnitService(db *gorm.DB) *UnitService {
	return &UnitService{DB: db}
}

// List mengembalikan unit aktif, opsional termasuk yang sudah dihapus
// (soft delete) untuk halaman admin.
func (s *UnitService) List(search string, includeDeleted bool) ([]model.UnitModel, error) {
	tx := s.DB.Model(&model.UnitModel{})
	if !includeDeleted {
		tx = tx.Where("is_deleted = ?", false)
	}
	if q := strings.TrimSpace(search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(type) LIKE ? OR LOWER(number_plate) LIKE ?", like, like, like)
	}

	var units []model.UnitModel
	if err := tx.Order("name ASC").Find(&units).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar unit")
	}
	return units, nil
}

func (s *UnitService) GetByID(id uuid.UUID) (*model.UnitModel, error) {
	var unit model.UnitModel
	if err := s.DB.Where("id = ?", id).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Unit tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil unit")
	}
	return &unit, nil
}

func (s *UnitService) Create(req dto.CreateUnitRequest) (*model.UnitModel, error) {
	unit := model.UnitModel{
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		NumberPlate: req.NumberPlate,
	}
	if err := s.DB.Create(&unit).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat unit")
	}
	return &unit, nil
}

func (s *UnitService) Update(id uuid.UUID, req dto.UpdateUnitRequest) (*model.UnitModel, error) {
	unit, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit.IsDeleted {
		return nil, fiber.NewError(fiber.StatusConflict, "Unit sudah dihapus; restore dulu sebelum mengubah")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		updates["type"] = strings.TrimSpace(*req.Type)
	}
	if req.NumberPlate != nil {
		updates["number_plate"] = req.NumberPlate
	}
	if len(updates) == 0 {
		return unit, nil
	}

	if err := s.DB.Model(&model.UnitModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan unit")
	}
	return s.GetByID(id)
}

// SoftDelete menandai unit terhapus. Riwayat workcheck lama tetap menunjuk
// unit ini, jadi barisnya tidak pernah benar-benar dihapus.
func (s *UnitService) SoftDelete(id uuid.UUID) error {
	unit, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if unit.IsDeleted {
		return fiber.NewError(fiber.StatusConflict, "Unit sudah dihapus")
	}

	now := time.Now()
	if err := s.DB.Model(&model.UnitModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus unit")
	}
	return nil
}

func (s *UnitService) Restore(id uuid.UUID) (*model.UnitModel, error) {
	unit, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !unit.IsDeleted {
		return nil, fiber.NewError(fiber.StatusConflict, "Unit tidak dalam status terhapus")
	}

	if err := s.DB.Model(&model.UnitModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_deleted": false,
		"deleted_at": nil,
	}).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal me-restore unit")
	}
	return s.GetByID(id)
}
