package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	checkItemModel "armadacheck_backend/internals/features/fleet/check_items/model"
	unitModel "armadacheck_backend/internals/features/fleet/units/model"
	"armadacheck_backend/internals/features/inspection/workcheck/model"
	userModel "armadacheck_backend/internals/features/users/user/model"
	helper "armadacheck_backend/internals/helpers"
	"armadacheck_backend/internals/helpers/authctx"
)

func boolPtr(v bool) *bool { return &v }

func paging(page, perPage int) helper.Paging {
	return helper.Paging{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
		Limit:   perPage,
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&unitModel.UnitModel{},
		&checkItemModel.CheckItemModel{},
		&model.WorkcheckModel{},
		&model.WorkcheckItemModel{},
		&model.WorkcheckItemImageModel{},
		&model.ApprovalModel{},
	))
	return db
}

type fixture struct {
	db    *gorm.DB
	staff userModel.UserModel
	admin userModel.UserModel
	unit  unitModel.UnitModel
	items []checkItemModel.CheckItemModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)

	f := &fixture{
		db: db,
		staff: userModel.UserModel{
			FirstName: "Budi", LastName: "Santoso",
			Username: "budi", Password: "x", Role: "STAFF", IsActive: true,
		},
		admin: userModel.UserModel{
			FirstName: "Sari", LastName: "Wijaya",
			Username: "sari", Password: "x", Role: "ADMIN", IsActive: true,
		},
		unit: unitModel.UnitModel{Name: "Excavator 01", Type: "EXCAVATOR"},
	}
	require.NoError(t, db.Create(&f.staff).Error)
	require.NoError(t, db.Create(&f.admin).Error)
	require.NoError(t, db.Create(&f.unit).Error)

	f.items = []checkItemModel.CheckItemModel{
		{Code: "OLI", Label: "Level oli mesin", SortOrder: 1, IsActive: true},
		{Code: "BAN", Label: "Kondisi ban", SortOrder: 2, IsActive: true},
		{Code: "LAMA", Label: "Item nonaktif", SortOrder: 3, IsActive: false},
	}
	require.NoError(t, db.Create(&f.items).Error)
	return f
}

func (f *fixture) staffAuth() authctx.AuthContext {
	return authctx.AuthContext{UserID: f.staff.ID, Role: f.staff.Role, Username: f.staff.Username}
}

func (f *fixture) adminAuth() authctx.AuthContext {
	return authctx.AuthContext{UserID: f.admin.ID, Role: f.admin.Role, Username: f.admin.Username}
}

func (f *fixture) newStaff(t *testing.T, username string) (userModel.UserModel, authctx.AuthContext) {
	t.Helper()
	u := userModel.UserModel{
		FirstName: "Staff", LastName: username,
		Username: username, Password: "x", Role: "STAFF", IsActive: true,
	}
	require.NoError(t, f.db.Create(&u).Error)
	return u, authctx.AuthContext{UserID: u.ID, Role: u.Role, Username: u.Username}
}

func (f *fixture) newUnit(t *testing.T, name string) unitModel.UnitModel {
	t.Helper()
	u := unitModel.UnitModel{Name: name, Type: "TRUCK"}
	require.NoError(t, f.db.Create(&u).Error)
	return u
}

func requireFiberError(t *testing.T, err error, wantCode int) *fiber.Error {
	t.Helper()
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T: %v", err, err)
	require.Equal(t, wantCode, fe.Code, "message: %s", fe.Message)
	return fe
}

// attachImage menempelkan foto evidence langsung di DB (jalur upload punya
// test sendiri di evidence_service_test).
func (f *fixture) attachImage(t *testing.T, itemRowID uuid.UUID) {
	t.Helper()
	require.NoError(t, f.db.Create(&model.WorkcheckItemImageModel{
		ItemID:   itemRowID,
		FileName: "https://blob.test/workcheck/x.jpg",
	}).Error)
}

func TestCreateToday(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)
	now := time.Now()

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, now)
	require.NoError(t, err)
	assert.Equal(t, f.staff.ID, wc.CheckerID)
	assert.Equal(t, f.unit.ID, wc.UnitID)
	assert.False(t, wc.IsSubmitted)

	// Snapshot hanya item aktif; item nonaktif tidak ikut.
	require.Len(t, wc.Items, 2)
	codes := []string{}
	for _, item := range wc.Items {
		require.NotNil(t, item.CheckItem)
		codes = append(codes, item.CheckItem.Code)
		assert.Equal(t, []string{}, item.ActionList())
	}
	assert.ElementsMatch(t, []string{"OLI", "BAN"}, codes)
}

func TestCreateTodayDuplicateStaff(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)
	now := time.Now()

	_, err := svc.CreateToday(f.staffAuth(), f.unit.ID, now)
	require.NoError(t, err)

	otherUnit := f.newUnit(t, "Truck 02")
	_, err = svc.CreateToday(f.staffAuth(), otherUnit.ID, now)
	requireFiberError(t, err, fiber.StatusConflict)
}

func TestCreateTodayDuplicateUnit(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)
	now := time.Now()

	_, err := svc.CreateToday(f.staffAuth(), f.unit.ID, now)
	require.NoError(t, err)

	_, otherAuth := f.newStaff(t, "andi")
	_, err = svc.CreateToday(otherAuth, f.unit.ID, now)
	requireFiberError(t, err, fiber.StatusConflict)
}

func TestWorkcheckUniqueIndexes(t *testing.T) {
	// Penjaga terakhir melawan create yang balapan: unique index per
	// (checker, hari) dan (unit, hari), diterjemahkan gorm jadi
	// ErrDuplicatedKey.
	f := newFixture(t)
	day := time.Now().Format("2006-01-02")

	first := model.WorkcheckModel{CheckerID: f.staff.ID, UnitID: f.unit.ID, CheckDate: day}
	require.NoError(t, f.db.Create(&first).Error)

	otherUnit := f.newUnit(t, "Truck 02")
	sameChecker := model.WorkcheckModel{CheckerID: f.staff.ID, UnitID: otherUnit.ID, CheckDate: day}
	assert.ErrorIs(t, f.db.Create(&sameChecker).Error, gorm.ErrDuplicatedKey)

	otherStaff, _ := f.newStaff(t, "andi")
	sameUnit := model.WorkcheckModel{CheckerID: otherStaff.ID, UnitID: f.unit.ID, CheckDate: day}
	assert.ErrorIs(t, f.db.Create(&sameUnit).Error, gorm.ErrDuplicatedKey)

	// Hari berbeda tidak bentrok.
	nextDay := model.WorkcheckModel{
		CheckerID: f.staff.ID, UnitID: f.unit.ID,
		CheckDate: time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
	}
	assert.NoError(t, f.db.Create(&nextDay).Error)
}

func TestCreateTodayUnknownUnit(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)

	_, err := svc.CreateToday(f.staffAuth(), uuid.New(), time.Now())
	requireFiberError(t, err, fiber.StatusNotFound)
}

func TestGetTodayEmpty(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)

	wc, err := svc.GetToday(f.staffAuth(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, wc)

	units, err := svc.AvailableUnits(time.Now())
	require.NoError(t, err)
	assert.Len(t, units, 1)
}

func TestAvailableUnitsExcludesTaken(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)
	now := time.Now()
	f.newUnit(t, "Truck 02")

	_, err := svc.CreateToday(f.staffAuth(), f.unit.ID, now)
	require.NoError(t, err)

	units, err := svc.AvailableUnits(now)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "Truck 02", units[0].Name)
}

func TestGetByIDOwnership(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, time.Now())
	require.NoError(t, err)

	// Staff lain tidak melihat apa-apa, bukan 403.
	_, otherAuth := f.newStaff(t, "andi")
	_, err = svc.GetByID(otherAuth, wc.ID)
	requireFiberError(t, err, fiber.StatusNotFound)

	// Admin boleh.
	got, err := svc.GetByID(f.adminAuth(), wc.ID)
	require.NoError(t, err)
	assert.Equal(t, wc.ID, got.ID)
}

func TestUpdateItemActions(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, time.Now())
	require.NoError(t, err)
	row := wc.Items[0]

	item, err := svc.UpdateItem(f.staffAuth(), row.ID, "actions", `["P","B"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"P", "B"}, item.ActionList())

	item, err = svc.UpdateItem(f.staffAuth(), row.ID, "note", "oli agak keruh")
	require.NoError(t, err)
	assert.Equal(t, "oli agak keruh", item.Note)
}

func TestUpdateItemRejectsMalformedActions(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, time.Now())
	require.NoError(t, err)
	row := wc.Items[0]

	cases := []struct {
		name  string
		value string
	}{
		{"bukan JSON", `P,B`},
		{"bukan array", `{"a":1}`},
		{"kode tidak dikenal", `["P","X"]`},
		{"kode duplikat", `["P","P"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateItem(f.staffAuth(), row.ID, "actions", tc.value)
			requireFiberError(t, err, fiber.StatusBadRequest)
		})
	}

	_, err = svc.UpdateItem(f.staffAuth(), row.ID, "warna", "merah")
	requireFiberError(t, err, fiber.StatusBadRequest)
}

func completeWorkcheck(t *testing.T, f *fixture, svc *WorkcheckService, wc *model.WorkcheckModel) {
	t.Helper()
	for _, row := range wc.Items {
		_, err := svc.UpdateItem(f.staffAuth(), row.ID, "actions", `["P"]`)
		require.NoError(t, err)
		f.attachImage(t, row.ID)
	}
	_, err := svc.UpdateHoursMeter(f.staffAuth(), wc.ID, 1234.5)
	require.NoError(t, err)
}

func TestSubmitIncomplete(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, time.Now())
	require.NoError(t, err)
	_, err = svc.UpdateHoursMeter(f.staffAuth(), wc.ID, 100)
	require.NoError(t, err)

	_, err = svc.Submit(f.staffAuth(), wc.ID)
	fe := requireFiberError(t, err, fiber.StatusBadRequest)
	assert.Equal(t, "Please complete all 2 remaining items before submitting", fe.Message)

	// Satu item lengkap: hitungan sisa menyusut.
	_, err = svc.UpdateItem(f.staffAuth(), wc.Items[0].ID, "actions", `["P"]`)
	require.NoError(t, err)
	f.attachImage(t, wc.Items[0].ID)

	_, err = svc.Submit(f.staffAuth(), wc.ID)
	fe = requireFiberError(t, err, fiber.StatusBadRequest)
	assert.Equal(t, "Please complete all 1 remaining items before submitting", fe.Message)
}

func TestSubmitRequiresHoursMeter(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, time.Now())
	require.NoError(t, err)
	for _, row := range wc.Items {
		_, err := svc.UpdateItem(f.staffAuth(), row.ID, "actions", `["P"]`)
		require.NoError(t, err)
		f.attachImage(t, row.ID)
	}

	_, err = svc.Submit(f.staffAuth(), wc.ID)
	requireFiberError(t, err, fiber.StatusBadRequest)
}

func TestSubmitCreatesPendingApproval(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, time.Now())
	require.NoError(t, err)
	completeWorkcheck(t, f, svc, wc)

	submitted, err := svc.Submit(f.staffAuth(), wc.ID)
	require.NoError(t, err)
	assert.True(t, submitted.IsSubmitted)
	require.NotNil(t, submitted.Approval)
	assert.Equal(t, model.ApprovalPending, submitted.Approval.Status())
}

func TestResubmitResetsSameApproval(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)
	approvals := NewApprovalService(f.db)

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, time.Now())
	require.NoError(t, err)
	completeWorkcheck(t, f, svc, wc)

	submitted, err := svc.Submit(f.staffAuth(), wc.ID)
	require.NoError(t, err)
	firstApprovalID := submitted.Approval.ID

	comment := "foto ban buram"
	_, err = approvals.Decide(f.adminAuth(), wc.ID, false, &comment, time.Now())
	require.NoError(t, err)

	resubmitted, err := svc.Submit(f.staffAuth(), wc.ID)
	require.NoError(t, err)
	require.NotNil(t, resubmitted.Approval)
	assert.Equal(t, firstApprovalID, resubmitted.Approval.ID, "resubmit harus me-reset baris approval yang sama")
	assert.Equal(t, model.ApprovalPending, resubmitted.Approval.Status())
	assert.Nil(t, resubmitted.Approval.Comments)
	assert.Nil(t, resubmitted.Approval.ApproverID)

	var total int64
	require.NoError(t, f.db.Model(&model.ApprovalModel{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestApprovedWorkcheckIsFrozen(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)
	approvals := NewApprovalService(f.db)

	wc, err := svc.CreateToday(f.staffAuth(), f.unit.ID, time.Now())
	require.NoError(t, err)
	completeWorkcheck(t, f, svc, wc)
	_, err = svc.Submit(f.staffAuth(), wc.ID)
	require.NoError(t, err)
	_, err = approvals.Decide(f.adminAuth(), wc.ID, true, nil, time.Now())
	require.NoError(t, err)

	_, err = svc.UpdateHoursMeter(f.staffAuth(), wc.ID, 9999)
	requireFiberError(t, err, fiber.StatusConflict)

	_, err = svc.UpdateItem(f.staffAuth(), wc.Items[0].ID, "note", "coret")
	requireFiberError(t, err, fiber.StatusConflict)

	_, err = svc.Submit(f.staffAuth(), wc.ID)
	requireFiberError(t, err, fiber.StatusConflict)
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)

	today := time.Now()
	for i := 0; i < 3; i++ {
		wc := model.WorkcheckModel{
			CheckerID: f.staff.ID,
			UnitID:    f.unit.ID,
			CheckDate: today.AddDate(0, 0, -i).Format("2006-01-02"),
		}
		require.NoError(t, f.db.Create(&wc).Error)
	}

	list, total, err := svc.History(f.staffAuth(), HistoryFilter{}, paging(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.True(t, list[0].CheckDate > list[1].CheckDate, "terbaru duluan")
}

func TestHistoryFilters(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkcheckService(f.db)
	approvals := NewApprovalService(f.db)
	auth := f.staffAuth()

	// Tiga hari riwayat: ditolak, disetujui, dan antre review.
	days := make([]string, 3)
	decisions := []*bool{boolPtr(false), boolPtr(true), nil}
	for i := 0; i < 3; i++ {
		day := time.Now().AddDate(0, 0, -i)
		days[i] = day.Format("2006-01-02")
		wc, err := svc.CreateToday(auth, f.newUnit(t, fmt.Sprintf("Unit H%d", i)).ID, day)
		require.NoError(t, err)
		completeWorkcheck(t, f, svc, wc)
		_, err = svc.Submit(auth, wc.ID)
		require.NoError(t, err)
		if decisions[i] != nil {
			_, err = approvals.Decide(f.adminAuth(), wc.ID, *decisions[i], nil, time.Now())
			require.NoError(t, err)
		}
	}

	for status, wantDay := range map[string]string{
		"rejected": days[0],
		"approved": days[1],
		"pending":  days[2],
	} {
		list, total, err := svc.History(auth, HistoryFilter{Status: status}, paging(1, 10))
		require.NoError(t, err, status)
		require.Equal(t, int64(1), total, status)
		require.Len(t, list, 1, status)
		assert.Equal(t, wantDay, list[0].CheckDate, status)
	}

	byDate, total, err := svc.History(auth, HistoryFilter{Date: days[1]}, paging(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, byDate, 1)
	assert.Equal(t, days[1], byDate[0].CheckDate)

	_, _, err = svc.History(auth, HistoryFilter{Status: "selesai"}, paging(1, 10))
	requireFiberError(t, err, fiber.StatusBadRequest)
}
