package oss

import (
	"context"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BlobService adalah facade upload/hapus yang seragam untuk service layer.
// Controller/service tidak perlu tahu implementasi storage di baliknya,
// dan test bisa menyuntik fake.
type BlobService interface {
	// UploadFile menulis object ke key (path lengkap relatif bucket) dan
	// mengembalikan public URL-nya.
	UploadFile(ctx context.Context, key string, fh *multipart.FileHeader) (publicURL string, err error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

// --------------------------------------------------
// Implementasi berbasis Aliyun OSS
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// NewOSSBlobServiceFromEnv membuat instance dari ENV. prefix opsional (contoh: "uploads/").
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadFile(ctx context.Context, key string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Gagal membuka file upload")
	}
	defer src.Close()

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}

	if err := b.svc.UploadStream(ctx, key, src, ct); err != nil {
		return "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
	return b.svc.PublicURL(b.svc.withPrefix(key)), nil
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if strings.TrimSpace(publicURL) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "URL kosong")
	}
	return b.svc.DeleteByPublicURL(ctx, publicURL)
}

// --------------------------------------------------
// Util multipart
// --------------------------------------------------

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFilename membuang karakter selain alfanumerik, titik, dan dash
// (pola yang sama dengan penamaan evidence di storage).
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "")
}

// IsImageUpload memeriksa MIME type dari header multipart; fallback sniff
// isi file bila header kosong.
func IsImageUpload(fh *multipart.FileHeader) bool {
	ct := fh.Header.Get("Content-Type")
	if ct != "" {
		return strings.HasPrefix(ct, "image/")
	}
	src, err := fh.Open()
	if err != nil {
		return false
	}
	defer src.Close()
	head := make([]byte, 512)
	n, _ := src.Read(head)
	return strings.HasPrefix(http.DetectContentType(head[:n]), "image/")
}
