package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"armadacheck_backend/internals/constants"
	checkItemModel "armadacheck_backend/internals/features/fleet/check_items/model"
	unitModel "armadacheck_backend/internals/features/fleet/units/model"
	"armadacheck_backend/internals/features/inspection/workcheck/model"
	helper "armadacheck_backend/internals/helpers"
	"armadacheck_backend/internals/helpers/authctx"
)

type WorkcheckService struct {
	DB *gorm.DB
}

func NewWorkcheckService(db *gorm.DB) *WorkcheckService {
	return &WorkcheckService{DB: db}
}

var workcheckPreloads = []string{"Unit", "Items.CheckItem", "Items.Images", "Approval.Approver"}

func (s *WorkcheckService) preloadAll(tx *gorm.DB) *gorm.DB {
	for _, p := range workcheckPreloads {
		tx = tx.Preload(p)
	}
	return tx
}

// CreateToday membuat workcheck hari ini untuk staff: satu per staff per hari,
// satu per unit per hari. Snapshot item checklist diambil dari katalog aktif
// saat pembuatan. Lookup duluan hanya untuk pesan error yang enak dibaca;
// penjaga sebenarnya adalah unique index di DB.
func (s *WorkcheckService) CreateToday(auth authctx.AuthContext, unitID uuid.UUID, now time.Time) (*model.WorkcheckModel, error) {
	dayKey := helper.DayKey(now)

	var unit unitModel.UnitModel
	if err := s.DB.Where("id = ? AND is_deleted = ?", unitID, false).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Unit tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa unit")
	}

	var count int64
	if err := s.DB.Model(&model.WorkcheckModel{}).
		Where("checker_id = ? AND check_date = ? AND is_deleted = ?", auth.UserID, dayKey, false).
		Count(&count).Error; err == nil && count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Anda sudah memiliki workcheck untuk hari ini")
	}
	if err := s.DB.Model(&model.WorkcheckModel{}).
		Where("unit_id = ? AND check_date = ? AND is_deleted = ?", unitID, dayKey, false).
		Count(&count).Error; err == nil && count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Unit ini sudah dipilih staff lain hari ini")
	}

	var activeItems []checkItemModel.CheckItemModel
	if err := s.DB.Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&activeItems).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar item checklist")
	}
	if len(activeItems) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Belum ada item checklist aktif")
	}

	wc := model.WorkcheckModel{
		CheckerID: auth.UserID,
		UnitID:    unitID,
		CheckDate: dayKey,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&wc).Error; err != nil {
			return err
		}
		rows := make([]model.WorkcheckItemModel, 0, len(activeItems))
		for _, item := range activeItems {
			rows = append(rows, model.WorkcheckItemModel{
				WorkcheckID: wc.ID,
				ItemID:      item.ID,
				Actions:     datatypes.JSON([]byte("[]")),
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Workcheck untuk hari/unit ini sudah dibuat")
		}
		log.Printf("[ERROR] gagal membuat workcheck: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat workcheck")
	}

	return s.findByID(wc.ID)
}

// GetToday mengambil workcheck hari ini milik staff. Mengembalikan nil (tanpa
// error) bila belum ada, supaya controller bisa menawarkan pemilihan unit.
func (s *WorkcheckService) GetToday(auth authctx.AuthContext, now time.Time) (*model.WorkcheckModel, error) {
	var wc model.WorkcheckModel
	err := s.preloadAll(s.DB).
		Where("checker_id = ? AND check_date = ? AND is_deleted = ?", auth.UserID, helper.DayKey(now), false).
		First(&wc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil workcheck hari ini")
	}
	return &wc, nil
}

// AvailableUnits mengembalikan unit yang belum dipakai workcheck hari ini.
func (s *WorkcheckService) AvailableUnits(now time.Time) ([]unitModel.UnitModel, error) {
	var units []unitModel.UnitModel
	sub := s.DB.Model(&model.WorkcheckModel{}).
		Select("unit_id").
		Where("check_date = ? AND is_deleted = ?", helper.DayKey(now), false)

	if err := s.DB.Where("is_deleted = ?", false).
		Where("id NOT IN (?)", sub).
		Order("name ASC").
		Find(&units).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar unit")
	}
	return units, nil
}

// GetByID mengambil workcheck dengan aturan kepemilikan: staff hanya boleh
// melihat miliknya sendiri (mismatch dijawab 404, bukan 403, supaya tidak
// membocorkan keberadaan record), admin boleh semua.
func (s *WorkcheckService) GetByID(auth authctx.AuthContext, id uuid.UUID) (*model.WorkcheckModel, error) {
	wc, err := s.findByID(id)
	if err != nil {
		return nil, err
	}
	if !auth.IsAdmin() && wc.CheckerID != auth.UserID {
		return nil, fiber.NewError(fiber.StatusNotFound, "Workcheck tidak ditemukan")
	}
	return wc, nil
}

func (s *WorkcheckService) findByID(id uuid.UUID) (*model.WorkcheckModel, error) {
	var wc model.WorkcheckModel
	err := s.preloadAll(s.DB).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&wc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Workcheck tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil workcheck")
	}
	return &wc, nil
}

// UpdateHoursMeter mengubah angka hours meter. Ditolak 409 bila sudah approved.
func (s *WorkcheckService) UpdateHoursMeter(auth authctx.AuthContext, workcheckID uuid.UUID, hours float64) (*model.WorkcheckModel, error) {
	wc, err := s.GetByID(auth, workcheckID)
	if err != nil {
		return nil, err
	}
	if wc.Approval.Status() == model.ApprovalApproved {
		return nil, fiber.NewError(fiber.StatusConflict, "Workcheck yang sudah disetujui tidak bisa diubah")
	}
	if hours < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Hours meter tidak boleh negatif")
	}

	if err := s.DB.Model(&model.WorkcheckModel{}).
		Where("id = ?", wc.ID).
		Update("hours_meter", hours).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan hours meter")
	}
	return s.findByID(wc.ID)
}

// UpdateItem mengubah satu baris checklist: field "actions" (JSON array kode
// aksi) atau "note". Payload actions yang bukan JSON array valid, atau memuat
// kode di luar P/B/L/T, dijawab 400 — tidak pernah di-coerce diam-diam.
func (s *WorkcheckService) UpdateItem(auth authctx.AuthContext, itemRowID uuid.UUID, field, value string) (*model.WorkcheckItemModel, error) {
	var item model.WorkcheckItemModel
	if err := s.DB.Where("id = ?", itemRowID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Item workcheck tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil item workcheck")
	}

	wc, err := s.GetByID(auth, item.WorkcheckID)
	if err != nil {
		return nil, err
	}
	if wc.Approval.Status() == model.ApprovalApproved {
		return nil, fiber.NewError(fiber.StatusConflict, "Workcheck yang sudah disetujui tidak bisa diubah")
	}

	updates := map[string]interface{}{}
	switch field {
	case "actions":
		var actions []string
		if err := json.Unmarshal([]byte(value), &actions); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Format actions tidak valid: harus JSON array")
		}
		seen := map[string]struct{}{}
		for _, code := range actions {
			if !constants.IsValidAction(code) {
				return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Kode aksi tidak dikenal: %q", code))
			}
			if _, dup := seen[code]; dup {
				return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Kode aksi duplikat: %q", code))
			}
			seen[code] = struct{}{}
		}
		normalized, _ := json.Marshal(actions)
		updates["actions"] = datatypes.JSON(normalized)
	case "note":
		updates["note"] = value
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Field tidak dikenal: hanya actions atau note")
	}

	if err := s.DB.Model(&model.WorkcheckItemModel{}).
		Where("id = ?", item.ID).
		Updates(updates).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan item workcheck")
	}

	var fresh model.WorkcheckItemModel
	if err := s.DB.Preload("CheckItem").Preload("Images").
		Where("id = ?", item.ID).
		First(&fresh).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil item workcheck")
	}
	return &fresh, nil
}

// Submit mengajukan workcheck untuk review. Semua item harus lengkap (≥1 aksi
// dan tepat satu foto) dan hours meter terisi. Submit pertama membuat baris
// approval pending; resubmission setelah reject me-reset baris yang sama.
func (s *WorkcheckService) Submit(auth authctx.AuthContext, workcheckID uuid.UUID) (*model.WorkcheckModel, error) {
	wc, err := s.GetByID(auth, workcheckID)
	if err != nil {
		return nil, err
	}
	if wc.Approval.Status() == model.ApprovalApproved {
		return nil, fiber.NewError(fiber.StatusConflict, "Workcheck sudah disetujui")
	}
	if wc.HoursMeter == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Hours meter wajib diisi sebelum submit")
	}

	remaining := 0
	for i := range wc.Items {
		if !wc.Items[i].IsComplete() {
			remaining++
		}
	}
	if remaining > 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Please complete all %d remaining items before submitting", remaining))
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.WorkcheckModel{}).
			Where("id = ?", wc.ID).
			Update("is_submitted", true).Error; err != nil {
			return err
		}

		if wc.Approval == nil {
			return tx.Create(&model.ApprovalModel{WorkcheckID: wc.ID}).Error
		}

		wc.Approval.ResetToPending()
		return tx.Model(&model.ApprovalModel{}).
			Where("id = ?", wc.Approval.ID).
			Updates(map[string]interface{}{
				"approver_id": nil,
				"is_approved": nil,
				"comments":    nil,
				"approved_at": nil,
			}).Error
	})
	if err != nil {
		log.Printf("[ERROR] gagal submit workcheck %s: %v", wc.ID, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal submit workcheck")
	}

	return s.findByID(wc.ID)
}

// HistoryFilter menyaring riwayat milik staff; semantik status/tanggal sama
// dengan filter daftar review admin.
type HistoryFilter struct {
	Status string // pending | approved | rejected | ""
	Date   string // YYYY-MM-DD
}

// History mengembalikan riwayat workcheck milik staff, terbaru duluan. Filter
// dieksekusi di SQL supaya total pagination tetap konsisten.
func (s *WorkcheckService) History(auth authctx.AuthContext, filter HistoryFilter, paging helper.Paging) ([]model.WorkcheckModel, int64, error) {
	switch filter.Status {
	case "pending", "approved", "rejected", "":
	default:
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "Status filter tidak dikenal")
	}

	filtered := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("workchecks.checker_id = ? AND workchecks.is_deleted = ?", auth.UserID, false)
		if filter.Status != "" {
			tx = tx.Joins("LEFT JOIN approvals ON approvals.workcheck_id = workchecks.id")
			switch filter.Status {
			case "pending":
				tx = tx.Where("workchecks.is_submitted = ? AND approvals.is_approved IS NULL", true)
			case "approved":
				tx = tx.Where("approvals.is_approved = ?", true)
			case "rejected":
				tx = tx.Where("approvals.is_approved = ?", false)
			}
		}
		if filter.Date != "" {
			tx = tx.Where("workchecks.check_date = ?", filter.Date)
		}
		return tx
	}

	var total int64
	if err := s.DB.Model(&model.WorkcheckModel{}).Scopes(filtered).
		Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung riwayat workcheck")
	}

	var list []model.WorkcheckModel
	if err := s.preloadAll(s.DB.Model(&model.WorkcheckModel{})).
		Select("workchecks.*").
		Scopes(filtered).
		Order("check_date DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&list).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil riwayat workcheck")
	}
	return list, total, nil
}
