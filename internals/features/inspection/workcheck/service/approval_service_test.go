package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"armadacheck_backend/internals/features/inspection/workcheck/model"
)

// submittedWorkcheck menyiapkan satu workcheck lengkap yang sudah disubmit.
func submittedWorkcheck(t *testing.T, f *fixture) *model.WorkcheckModel {
	t.Helper()
	svc := NewWorkcheckService(f.db)

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, time.Now())
	require.NoError(t, err)
	completeWorkcheck(t, f, svc, wc)

	submitted, err := svc.Submit(f.staffAuth(), wc.ID)
	require.NoError(t, err)
	return submitted
}

func TestDecideApprove(t *testing.T) {
	f := newFixture(t)
	approvals := NewApprovalService(f.db)
	wc := submittedWorkcheck(t, f)

	got, err := approvals.Decide(f.adminAuth(), wc.ID, true, nil, time.Now())
	require.NoError(t, err)
	require.NotNil(t, got.Approval)
	assert.Equal(t, model.ApprovalApproved, got.Approval.Status())
	assert.NotNil(t, got.Approval.ApprovedAt)
	require.NotNil(t, got.Approval.ApproverID)
	assert.Equal(t, f.admin.ID, *got.Approval.ApproverID)
	assert.True(t, got.IsSubmitted)
}

func TestDecideRejectWithoutComment(t *testing.T) {
	f := newFixture(t)
	approvals := NewApprovalService(f.db)
	wc := submittedWorkcheck(t, f)

	// Komentar boleh kosong; validasi komentar diserahkan ke sisi klien.
	got, err := approvals.Decide(f.adminAuth(), wc.ID, false, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalRejected, got.Approval.Status())
	assert.Nil(t, got.Approval.Comments)
}

func TestDecideRejectKeepsSubmitted(t *testing.T) {
	f := newFixture(t)
	approvals := NewApprovalService(f.db)
	wc := submittedWorkcheck(t, f)

	comment := "foto ban tidak jelas"
	got, err := approvals.Decide(f.adminAuth(), wc.ID, false, &comment, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalRejected, got.Approval.Status())
	assert.True(t, got.IsSubmitted, "reject tidak membatalkan status submit")

	// Status reject saja sudah membuka item untuk revisi.
	svc := NewWorkcheckService(f.db)
	_, err = svc.UpdateItem(f.staffAuth(), got.Items[0].ID, "note", "sudah dibersihkan")
	require.NoError(t, err)
}

func TestDecideTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	approvals := NewApprovalService(f.db)
	wc := submittedWorkcheck(t, f)

	_, err := approvals.Decide(f.adminAuth(), wc.ID, true, nil, time.Now())
	require.NoError(t, err)

	_, err = approvals.Decide(f.adminAuth(), wc.ID, true, nil, time.Now())
	requireFiberError(t, err, fiber.StatusConflict)

	comment := "salah klik"
	_, err = approvals.Decide(f.adminAuth(), wc.ID, false, &comment, time.Now())
	requireFiberError(t, err, fiber.StatusConflict)
}

func TestDecideUnsubmitted(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)
	approvals := NewApprovalService(f.db)

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, time.Now())
	require.NoError(t, err)

	_, err = approvals.Decide(f.adminAuth(), wc.ID, true, nil, time.Now())
	requireFiberError(t, err, fiber.StatusConflict)
}

func TestAdminListFilters(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)
	approvals := NewApprovalService(f.db)

	wc := submittedWorkcheck(t, f)

	// Staff kedua, unit kedua: disubmit lalu disetujui.
	_, otherAuth := f.newStaff(t, "andi")
	otherUnit := f.newUnit(t, "Truck 02")
	wc2, err := svc.CreateToday(otherAuth, otherUnit.ID, time.Now())
	require.NoError(t, err)
	for _, row := range wc2.Items {
		_, err := svc.UpdateItem(otherAuth, row.ID, "actions", `["P"]`)
		require.NoError(t, err)
		f.attachImage(t, row.ID)
	}
	_, err = svc.UpdateHoursMeter(otherAuth, wc2.ID, 50)
	require.NoError(t, err)
	_, err = svc.Submit(otherAuth, wc2.ID)
	require.NoError(t, err)
	_, err = approvals.Decide(f.adminAuth(), wc2.ID, true, nil, time.Now())
	require.NoError(t, err)

	all, total, err := approvals.AdminList(AdminListFilter{}, paging(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	pending, total, err := approvals.AdminList(AdminListFilter{Status: "pending"}, paging(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	assert.Equal(t, wc.ID, pending[0].ID)

	approved, _, err := approvals.AdminList(AdminListFilter{Status: "approved"}, paging(1, 10))
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, wc2.ID, approved[0].ID)

	// Pencarian nama staff case-insensitive.
	byName, _, err := approvals.AdminList(AdminListFilter{Search: "BUDI"}, paging(1, 10))
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, wc.ID, byName[0].ID)

	// Pencarian nama unit.
	byUnit, _, err := approvals.AdminList(AdminListFilter{Search: "truck"}, paging(1, 10))
	require.NoError(t, err)
	require.Len(t, byUnit, 1)
	assert.Equal(t, wc2.ID, byUnit[0].ID)

	_, _, err = approvals.AdminList(AdminListFilter{Status: "ditolak"}, paging(1, 10))
	requireFiberError(t, err, fiber.StatusBadRequest)
}
