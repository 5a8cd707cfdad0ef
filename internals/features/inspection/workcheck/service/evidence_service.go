package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/inspection/workcheck/model"
	"armadacheck_backend/internals/helpers/authctx"
	"armadacheck_backend/internals/helpers/oss"
)

// MaxEvidenceSize membatasi ukuran foto evidence (10 MiB).
const MaxEvidenceSize = 10 << 20

type EvidenceService struct {
	DB   *gorm.DB
	Blob oss.BlobService
}

func NewEvidenceService(db *gorm.DB, blob oss.BlobService) *EvidenceService {
	return &EvidenceService{DB: db, Blob: blob}
}

// loadOwnedItem mengambil baris item beserta workcheck induknya dan memeriksa
// kepemilikan. Mismatch dijawab 404 supaya keberadaan record tidak bocor.
func (s *EvidenceService) loadOwnedItem(auth authctx.AuthContext, itemRowID uuid.UUID) (*model.WorkcheckItemModel, *model.WorkcheckModel, error) {
	var item model.WorkcheckItemModel
	if err := s.DB.Preload("Images").Where("id = ?", itemRowID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Item workcheck tidak ditemukan")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil item workcheck")
	}

	var wc model.WorkcheckModel
	if err := s.DB.Preload("Approval").
		Where("id = ? AND is_deleted = ?", item.WorkcheckID, false).
		First(&wc).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Workcheck tidak ditemukan")
	}
	if !auth.IsAdmin() && wc.CheckerID != auth.UserID {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Item workcheck tidak ditemukan")
	}
	if wc.Approval.Status() == model.ApprovalApproved {
		return nil, nil, fiber.NewError(fiber.StatusConflict, "Workcheck yang sudah disetujui tidak bisa diubah")
	}
	return &item, &wc, nil
}

// UploadItemImage mengunggah foto evidence untuk satu item. Maksimal satu foto
// per item; upload kedua dijawab 409 (ganti foto = hapus dulu lalu upload).
// Baris DB baru dibuat setelah blob sukses tersimpan, sehingga tidak pernah
// ada baris yang menunjuk object kosong.
func (s *EvidenceService) UploadItemImage(ctx context.Context, auth authctx.AuthContext, itemRowID uuid.UUID, fh *multipart.FileHeader, now time.Time) (*model.WorkcheckItemImageModel, error) {
	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File foto wajib diunggah")
	}
	if !oss.IsImageUpload(fh) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File harus berupa gambar")
	}
	if fh.Size > MaxEvidenceSize {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Ukuran foto maksimal 10MB")
	}

	item, _, err := s.loadOwnedItem(auth, itemRowID)
	if err != nil {
		return nil, err
	}
	if len(item.Images) > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Item ini sudah punya foto; hapus dulu sebelum upload ulang")
	}

	key := fmt.Sprintf("workcheck/%s/%s-%s-%d-%s-%s",
		now.Format("02-01-2006"),
		auth.UserID, item.ID, now.UnixMilli(),
		oss.RandHex(4),
		oss.SanitizeFilename(fh.Filename))

	publicURL, err := s.Blob.UploadFile(ctx, key, fh)
	if err != nil {
		return nil, err
	}

	img := model.WorkcheckItemImageModel{
		ItemID:   item.ID,
		FileName: publicURL,
	}
	if err := s.DB.Create(&img).Error; err != nil {
		// Baris kalah balapan dengan upload lain: bersihkan blob yang barusan
		// ditulis supaya tidak jadi sampah.
		if delErr := s.Blob.DeleteByPublicURL(ctx, publicURL); delErr != nil {
			log.Printf("[ERROR] gagal membersihkan blob yatim %s: %v", publicURL, delErr)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Item ini sudah punya foto; hapus dulu sebelum upload ulang")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan foto evidence")
	}
	return &img, nil
}

// DeleteItemImage menghapus foto evidence milik satu item. Penghapusan blob
// best-effort: kegagalan storage dicatat tapi baris DB tetap dihapus supaya
// item bisa di-upload ulang.
func (s *EvidenceService) DeleteItemImage(ctx context.Context, auth authctx.AuthContext, itemRowID uuid.UUID) error {
	item, _, err := s.loadOwnedItem(auth, itemRowID)
	if err != nil {
		return err
	}
	if len(item.Images) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Item ini belum punya foto")
	}
	img := item.Images[0]

	if err := s.Blob.DeleteByPublicURL(ctx, img.FileName); err != nil {
		log.Printf("[ERROR] gagal menghapus blob %s: %v", img.FileName, err)
	}

	if err := s.DB.Delete(&model.WorkcheckItemImageModel{}, "id = ?", img.ID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus foto evidence")
	}
	return nil
}
