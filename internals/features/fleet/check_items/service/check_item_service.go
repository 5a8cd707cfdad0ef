package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/fleet/check_items/dto"
	"armadacheck_backend/internals/features/fleet/check_items/model"
	workcheckModel "armadacheck_backend/internals/features/inspection/workcheck/model"
)

type CheckItemService struct {
	DB *gorm.DB
}

func NewCheckItemService(db *gorm.DB) *CheckItemService {
	return &CheckItemService{DB: db}
}

// List mengembalikan katalog item, urut sort_order. activeOnly untuk frontend
// staff; admin melihat semuanya.
func (s *CheckItemService) List(activeOnly bool) ([]model.CheckItemModel, error) {
	tx := s.DB.Model(&model.CheckItemModel{})
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}

	var items []model.CheckItemModel
	if err := tx.Order("sort_order ASC, code ASC").Find(&items).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar item checklist")
	}
	return items, nil
}

func (s *CheckItemService) GetByID(id uuid.UUID) (*model.CheckItemModel, error) {
	var item model.CheckItemModel
	if err := s.DB.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Item checklist tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil item checklist")
	}
	return &item, nil
}

// Create menambah item katalog. Code dinormalisasi uppercase; keunikan dijaga
// unique index, duplikat dijawab 409.
func (s *CheckItemService) Create(req dto.CreateCheckItemRequest) (*model.CheckItemModel, error) {
	item := model.CheckItemModel{
		Code:  strings.ToUpper(strings.TrimSpace(req.Code)),
		Label: strings.TrimSpace(req.Label),
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	} else {
		item.SortOrder = s.nextSortOrder()
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	} else {
		item.IsActive = true
	}

	if err := s.DB.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Kode item %q sudah dipakai", item.Code))
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat item checklist")
	}
	return &item, nil
}

func (s *CheckItemService) nextSortOrder() int {
	var max int
	s.DB.Model(&model.CheckItemModel{}).Select("COALESCE(MAX(sort_order), 0)").Scan(&max)
	return max + 1
}

func (s *CheckItemService) Update(id uuid.UUID, req dto.UpdateCheckItemRequest) (*model.CheckItemModel, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Code != nil {
		updates["code"] = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Label != nil {
		updates["label"] = strings.TrimSpace(*req.Label)
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return s.GetByID(id)
	}

	if err := s.DB.Model(&model.CheckItemModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Kode item sudah dipakai item lain")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan item checklist")
	}
	return s.GetByID(id)
}

// Move menukar sort_order item dengan tetangga terdekatnya ke arah up/down.
// Di ujung daftar tidak ada tetangga; daftar dikembalikan apa adanya. Urutan
// final selalu hasil resort penuh saat dibaca.
func (s *CheckItemService) Move(id uuid.UUID, direction string) ([]model.CheckItemModel, error) {
	if direction != "up" && direction != "down" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Arah tidak dikenal: up atau down")
	}

	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	tx := s.DB.Model(&model.CheckItemModel{})
	if direction == "up" {
		tx = tx.Where("sort_order < ?", item.SortOrder).Order("sort_order DESC, code DESC")
	} else {
		tx = tx.Where("sort_order > ?", item.SortOrder).Order("sort_order ASC, code ASC")
	}

	var neighbor model.CheckItemModel
	if err := tx.First(&neighbor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.List(false)
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mencari posisi item")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CheckItemModel{}).
			Where("id = ?", item.ID).
			Update("sort_order", neighbor.SortOrder).Error; err != nil {
			return err
		}
		return tx.Model(&model.CheckItemModel{}).
			Where("id = ?", neighbor.ID).
			Update("sort_order", item.SortOrder).Error
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menukar urutan item")
	}
	return s.List(false)
}

// Delete menghapus item katalog secara permanen, tapi hanya bila belum pernah
// dipakai workcheck manapun. Item yang sudah terpakai cukup dinonaktifkan agar
// snapshot lama tetap utuh.
func (s *CheckItemService) Delete(id uuid.UUID) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	var usage int64
	if err := s.DB.Model(&workcheckModel.WorkcheckItemModel{}).
		Where("item_id = ?", id).
		Count(&usage).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa pemakaian item")
	}
	if usage > 0 {
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Item ini dipakai %d workcheck; nonaktifkan saja, jangan dihapus", usage))
	}

	if err := s.DB.Delete(&model.CheckItemModel{}, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus item checklist")
	}
	return nil
}
