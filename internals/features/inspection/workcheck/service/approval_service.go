package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/inspection/workcheck/model"
	helper "armadacheck_backend/internals/helpers"
	"armadacheck_backend/internals/helpers/authctx"
)

type ApprovalService struct {
	DB *gorm.DB
}

func NewApprovalService(db *gorm.DB) *ApprovalService {
	return &ApprovalService{DB: db}
}

// AdminListFilter untuk daftar review di halaman admin.
type AdminListFilter struct {
	Search   string // nama/username checker atau nama unit
	Status   string // pending | approved | rejected | ""
	DateFrom string // YYYY-MM-DD
	DateTo   string // YYYY-MM-DD
}

// Decide mencatat keputusan admin terhadap workcheck yang sudah disubmit.
// Hanya approval berstatus pending yang boleh diputuskan; approved bersifat
// terminal, dan keputusan ganda dijawab 409.
func (s *ApprovalService) Decide(auth authctx.AuthContext, workcheckID uuid.UUID, isApproved bool, comments *string, now time.Time) (*model.WorkcheckModel, error) {
	var wc model.WorkcheckModel
	err := s.DB.Preload("Approval").
		Where("id = ? AND is_deleted = ?", workcheckID, false).
		First(&wc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Workcheck tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil workcheck")
	}

	if !wc.IsSubmitted || wc.Approval == nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Workcheck belum disubmit untuk review")
	}
	if wc.Approval.Status() != model.ApprovalPending {
		return nil, fiber.NewError(fiber.StatusConflict, "Workcheck ini sudah diputuskan sebelumnya")
	}

	// Workcheck yang ditolak tetap tersubmit; status reject pada approval
	// sudah cukup untuk membuka item-item bagi revisi dan resubmit.
	approverID := auth.UserID
	err = s.DB.Model(&model.ApprovalModel{}).
		Where("id = ?", wc.Approval.ID).
		Updates(map[string]interface{}{
			"approver_id": approverID,
			"is_approved": isApproved,
			"comments":    comments,
			"approved_at": now,
		}).Error
	if err != nil {
		log.Printf("[ERROR] gagal menyimpan keputusan approval %s: %v", wc.ID, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan keputusan")
	}

	var fresh model.WorkcheckModel
	if err := s.DB.Preload("Unit").Preload("Checker").
		Preload("Items.CheckItem").Preload("Items.Images").
		Preload("Approval.Approver").
		Where("id = ?", wc.ID).
		First(&fresh).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil workcheck")
	}
	return &fresh, nil
}

// AdminList mengembalikan workcheck untuk halaman review admin. Filter status
// dan pencarian dieksekusi di SQL supaya pagination konsisten dengan total.
func (s *ApprovalService) AdminList(filter AdminListFilter, paging helper.Paging) ([]model.WorkcheckModel, int64, error) {
	switch filter.Status {
	case "pending", "approved", "rejected", "":
	default:
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "Status filter tidak dikenal")
	}

	// Scope dipakai ulang untuk count dan fetch supaya total pagination
	// selalu cocok dengan filter yang sama.
	filtered := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Joins("JOIN users ON users.id = workchecks.checker_id").
			Joins("JOIN units ON units.id = workchecks.unit_id").
			Joins("LEFT JOIN approvals ON approvals.workcheck_id = workchecks.id").
			Where("workchecks.is_deleted = ?", false).
			Where("workchecks.is_submitted = ? OR approvals.id IS NOT NULL", true)

		if q := strings.TrimSpace(filter.Search); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			tx = tx.Where(
				"LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(users.username) LIKE ? OR LOWER(units.name) LIKE ?",
				like, like, like, like)
		}

		switch filter.Status {
		case "pending":
			tx = tx.Where("approvals.is_approved IS NULL")
		case "approved":
			tx = tx.Where("approvals.is_approved = ?", true)
		case "rejected":
			tx = tx.Where("approvals.is_approved = ?", false)
		}

		if filter.DateFrom != "" {
			tx = tx.Where("workchecks.check_date >= ?", filter.DateFrom)
		}
		if filter.DateTo != "" {
			tx = tx.Where("workchecks.check_date <= ?", filter.DateTo)
		}
		return tx
	}

	var total int64
	if err := s.DB.Model(&model.WorkcheckModel{}).Scopes(filtered).
		Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung daftar workcheck")
	}

	var list []model.WorkcheckModel
	if err := s.DB.Model(&model.WorkcheckModel{}).Scopes(filtered).
		Preload("Checker").Preload("Unit").
		Preload("Items.CheckItem").Preload("Items.Images").
		Preload("Approval.Approver").
		Order("workchecks.check_date DESC, workchecks.created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Select("workchecks.*").
		Find(&list).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar workcheck")
	}
	return list, total, nil
}
