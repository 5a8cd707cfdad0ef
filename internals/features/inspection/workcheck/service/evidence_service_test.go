package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"armadacheck_backend/internals/features/inspection/workcheck/model"
)

// fakeBlob menyimpan object di memori dan bisa dipaksa gagal saat delete.
type fakeBlob struct {
	objects    map[string][]byte
	failDelete bool
	uploads    int
	deletes    int
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{objects: map[string][]byte{}}
}

func (b *fakeBlob) UploadFile(ctx context.Context, key string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(src); err != nil {
		return "", err
	}
	b.objects[key] = buf.Bytes()
	b.uploads++
	return "https://blob.test/" + key, nil
}

func (b *fakeBlob) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	b.deletes++
	if b.failDelete {
		return errors.New("storage unreachable")
	}
	delete(b.objects, strings.TrimPrefix(publicURL, "https://blob.test/"))
	return nil
}

// makeUpload membangun *multipart.FileHeader sungguhan lewat request palsu.
func makeUpload(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["image"][0]
}

func evidenceFixture(t *testing.T) (*fixture, *EvidenceService, *fakeBlob, *model.WorkcheckModel) {
	t.Helper()
	f := newFixture(t)
	blob := newFakeBlob()
	svc := NewWorkcheckService(f.db)
	evidence := NewEvidenceService(f.db, blob)

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, time.Now())
	require.NoError(t, err)
	return f, evidence, blob, wc
}

func TestUploadItemImage(t *testing.T) {
	f, evidence, blob, wc := evidenceFixture(t)
	row := wc.Items[0]

	img, err := evidence.UploadItemImage(context.Background(), f.staffAuth(), row.ID,
		makeUpload(t, "ban depan.jpg", "image/jpeg", 1024), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, blob.uploads)
	assert.True(t, strings.HasPrefix(img.FileName, "https://blob.test/workcheck/"), img.FileName)
	// Nama file disanitasi: spasi hilang.
	assert.True(t, strings.HasSuffix(img.FileName, "bandepan.jpg"), img.FileName)
	assert.Contains(t, img.FileName, f.staff.ID.String())
	assert.Contains(t, img.FileName, row.ID.String())
}

func TestUploadItemImageSecondConflicts(t *testing.T) {
	f, evidence, _, wc := evidenceFixture(t)
	row := wc.Items[0]

	_, err := evidence.UploadItemImage(context.Background(), f.staffAuth(), row.ID,
		makeUpload(t, "a.jpg", "image/jpeg", 100), time.Now())
	require.NoError(t, err)

	_, err = evidence.UploadItemImage(context.Background(), f.staffAuth(), row.ID,
		makeUpload(t, "b.jpg", "image/jpeg", 100), time.Now())
	requireFiberError(t, err, fiber.StatusConflict)
}

func TestUploadItemImageValidation(t *testing.T) {
	f, evidence, blob, wc := evidenceFixture(t)
	row := wc.Items[0]

	_, err := evidence.UploadItemImage(context.Background(), f.staffAuth(), row.ID,
		makeUpload(t, "laporan.pdf", "application/pdf", 100), time.Now())
	requireFiberError(t, err, fiber.StatusBadRequest)

	_, err = evidence.UploadItemImage(context.Background(), f.staffAuth(), row.ID,
		makeUpload(t, "besar.jpg", "image/jpeg", MaxEvidenceSize+1), time.Now())
	requireFiberError(t, err, fiber.StatusBadRequest)

	assert.Equal(t, 0, blob.uploads, "validasi gagal tidak boleh menyentuh storage")
}

func TestUploadItemImageOwnership(t *testing.T) {
	f, evidence, _, wc := evidenceFixture(t)
	_, otherAuth := f.newStaff(t, "andi")

	_, err := evidence.UploadItemImage(context.Background(), otherAuth, wc.Items[0].ID,
		makeUpload(t, "a.jpg", "image/jpeg", 100), time.Now())
	requireFiberError(t, err, fiber.StatusNotFound)
}

func TestDeleteThenReupload(t *testing.T) {
	f, evidence, blob, wc := evidenceFixture(t)
	row := wc.Items[0]
	ctx := context.Background()

	_, err := evidence.UploadItemImage(ctx, f.staffAuth(), row.ID,
		makeUpload(t, "a.jpg", "image/jpeg", 100), time.Now())
	require.NoError(t, err)

	require.NoError(t, evidence.DeleteItemImage(ctx, f.staffAuth(), row.ID))
	assert.Empty(t, blob.objects)

	_, err = evidence.UploadItemImage(ctx, f.staffAuth(), row.ID,
		makeUpload(t, "b.jpg", "image/jpeg", 100), time.Now())
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&model.WorkcheckItemImageModel{}).
		Where("item_id = ?", row.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteItemImageBestEffortBlob(t *testing.T) {
	// Storage mati bukan alasan menahan baris DB: item harus tetap bisa
	// di-upload ulang.
	f, evidence, blob, wc := evidenceFixture(t)
	row := wc.Items[0]
	ctx := context.Background()

	_, err := evidence.UploadItemImage(ctx, f.staffAuth(), row.ID,
		makeUpload(t, "a.jpg", "image/jpeg", 100), time.Now())
	require.NoError(t, err)

	blob.failDelete = true
	require.NoError(t, evidence.DeleteItemImage(ctx, f.staffAuth(), row.ID))

	var count int64
	require.NoError(t, f.db.Model(&model.WorkcheckItemImageModel{}).
		Where("item_id = ?", row.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteItemImageMissing(t *testing.T) {
	f, evidence, _, wc := evidenceFixture(t)

	err := evidence.DeleteItemImage(context.Background(), f.staffAuth(), wc.Items[0].ID)
	requireFiberError(t, err, fiber.StatusNotFound)
}

func TestUploadDetectsExistingImage(t *testing.T) {
	// Foto yang sudah ada terdeteksi sebelum menyentuh storage.
	f, evidence, blob, wc := evidenceFixture(t)
	row := wc.Items[0]

	f.attachImage(t, row.ID)

	_, err := evidence.UploadItemImage(context.Background(), f.staffAuth(), row.ID,
		makeUpload(t, "a.jpg", "image/jpeg", 100), time.Now())
	requireFiberError(t, err, fiber.StatusConflict)
	assert.Equal(t, 0, blob.uploads, "gambar yang sudah ada terdeteksi sebelum upload")
}
