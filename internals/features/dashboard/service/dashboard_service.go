package service

import (
	"math"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/dashboard/dto"
	unitModel "armadacheck_backend/internals/features/fleet/units/model"
	"armadacheck_backend/internals/features/inspection/workcheck/model"
	helper "armadacheck_backend/internals/helpers"
	"armadacheck_backend/internals/helpers/authctx"
)

// Jendela agregasi dashboard.
const (
	issueWindowDays    = 30
	coverageWindowDays = 7
	maxStreakDays      = 7
	topFailingLimit    = 5
)

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// hasIssue: item dianggap temuan bila staff mencatat aksi apa pun pada item
// tersebut (ada yang perlu dikerjakan, bukan sekadar dilewati).
func hasIssue(item *model.WorkcheckItemModel) bool {
	return len(item.ActionList()) > 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AdminMetrics merangkum kondisi armada: hari ini, jendela 30 hari untuk
// temuan dan durasi approval, jendela 7 hari untuk cakupan unit.
func (s *DashboardService) AdminMetrics(now time.Time) (*dto.AdminMetrics, error) {
	out := &dto.AdminMetrics{}
	today := helper.DayKey(now)

	if err := s.DB.Model(&model.WorkcheckModel{}).
		Where("check_date = ? AND is_deleted = ?", today, false).
		Count(&out.TodayTotal).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung workcheck hari ini")
	}
	if err := s.DB.Model(&model.WorkcheckModel{}).
		Where("check_date = ? AND is_deleted = ? AND is_submitted = ?", today, false, true).
		Count(&out.TodaySubmitted).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung workcheck tersubmit")
	}
	if err := s.DB.Model(&model.WorkcheckModel{}).
		Joins("JOIN approvals ON approvals.workcheck_id = workchecks.id").
		Where("workchecks.is_deleted = ? AND workchecks.is_submitted = ? AND approvals.is_approved IS NULL", false, true).
		Count(&out.PendingReviews).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung antrean review")
	}

	windowKeys := helper.LastNDayKeys(now, issueWindowDays)
	windowStart := windowKeys[0]

	var window []model.WorkcheckModel
	if err := s.DB.Preload("Items.CheckItem").Preload("Items.Images").Preload("Approval").
		Where("check_date >= ? AND is_deleted = ?", windowStart, false).
		Find(&window).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data jendela 30 hari")
	}
	out.WindowWorkchecks = int64(len(window))

	submittedCount, issueCount := 0, 0
	issueByItem := map[string]*dto.FailingItem{}
	var approvalHours float64
	decidedCount := 0

	for i := range window {
		wc := &window[i]
		wcHasIssue := false
		for j := range wc.Items {
			item := &wc.Items[j]
			if !hasIssue(item) {
				continue
			}
			wcHasIssue = true
			if item.CheckItem == nil {
				continue
			}
			key := item.ItemID.String()
			if _, ok := issueByItem[key]; !ok {
				issueByItem[key] = &dto.FailingItem{
					ItemID: key,
					Code:   item.CheckItem.Code,
					Label:  item.CheckItem.Label,
				}
			}
			issueByItem[key].IssueCount++
		}

		if wc.IsSubmitted {
			submittedCount++
			if wcHasIssue {
				issueCount++
			}
		}
		if wc.Approval.Status() != model.ApprovalPending && wc.Approval.ApprovedAt != nil {
			approvalHours += wc.Approval.ApprovedAt.Sub(wc.CreatedAt).Hours()
			decidedCount++
		}
	}

	// Persentase workcheck tersubmit yang punya minimal satu temuan.
	if submittedCount > 0 {
		out.IssueRate = round2(float64(issueCount) / float64(submittedCount) * 100)
	}
	if decidedCount > 0 {
		out.AvgApprovalHours = round2(approvalHours / float64(decidedCount))
	}

	failing := make([]dto.FailingItem, 0, len(issueByItem))
	for _, f := range issueByItem {
		failing = append(failing, *f)
	}
	sort.Slice(failing, func(i, j int) bool {
		if failing[i].IssueCount != failing[j].IssueCount {
			return failing[i].IssueCount > failing[j].IssueCount
		}
		return failing[i].Code < failing[j].Code
	})
	if len(failing) > topFailingLimit {
		failing = failing[:topFailingLimit]
	}
	out.TopFailingItems = failing

	coverage, err := s.vehicleCoverage(now)
	if err != nil {
		return nil, err
	}
	out.VehicleCoverage = coverage

	return out, nil
}

func (s *DashboardService) vehicleCoverage(now time.Time) ([]dto.UnitCoverage, error) {
	keys := helper.LastNDayKeys(now, coverageWindowDays)
	start := keys[0]

	var units []unitModel.UnitModel
	if err := s.DB.Where("is_deleted = ?", false).Order("name ASC").Find(&units).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar unit")
	}

	var rows []model.WorkcheckModel
	if err := s.DB.Select("unit_id", "check_date").
		Where("check_date >= ? AND is_deleted = ? AND is_submitted = ?", start, false, true).
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil cakupan unit")
	}

	checkedDays := map[string]map[string]struct{}{}
	for i := range rows {
		unitKey := rows[i].UnitID.String()
		if checkedDays[unitKey] == nil {
			checkedDays[unitKey] = map[string]struct{}{}
		}
		checkedDays[unitKey][rows[i].CheckDate] = struct{}{}
	}

	out := make([]dto.UnitCoverage, 0, len(units))
	for _, u := range units {
		days := len(checkedDays[u.ID.String()])
		out = append(out, dto.UnitCoverage{
			UnitID:      u.ID.String(),
			UnitName:    u.Name,
			DaysChecked: days,
			DaysTotal:   coverageWindowDays,
			Coverage:    float64(days) / float64(coverageWindowDays),
		})
	}
	return out, nil
}

// StaffMetrics merangkum performa satu staff, termasuk streak harian
// (maksimal 7, mundur dari hari ini, putus di hari pertama yang bolong).
func (s *DashboardService) StaffMetrics(auth authctx.AuthContext, now time.Time) (*dto.StaffMetrics, error) {
	out := &dto.StaffMetrics{}

	base := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("workchecks.checker_id = ? AND workchecks.is_deleted = ?", auth.UserID, false)
	}

	if err := s.DB.Model(&model.WorkcheckModel{}).Scopes(base).
		Count(&out.TotalWorkchecks).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung workcheck")
	}

	type statusCount struct {
		IsApproved *bool
		N          int64
	}
	var counts []statusCount
	if err := s.DB.Model(&model.WorkcheckModel{}).Scopes(base).
		Joins("JOIN approvals ON approvals.workcheck_id = workchecks.id").
		Select("approvals.is_approved AS is_approved, COUNT(*) AS n").
		Group("approvals.is_approved").
		Scan(&counts).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung status approval")
	}
	for _, row := range counts {
		switch {
		case row.IsApproved == nil:
			out.PendingCount = row.N
		case *row.IsApproved:
			out.ApprovedCount = row.N
		default:
			out.RejectedCount = row.N
		}
	}

	// Streak hanya menghitung hari dengan workcheck yang sudah tersubmit.
	keys := helper.LastNDayKeys(now, maxStreakDays)
	var recent []model.WorkcheckModel
	if err := s.DB.Select("check_date").Scopes(base).
		Where("workchecks.check_date >= ? AND workchecks.is_submitted = ?", keys[0], true).
		Find(&recent).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung streak")
	}
	have := map[string]struct{}{}
	for i := range recent {
		have[recent[i].CheckDate] = struct{}{}
	}

	var todayCount int64
	if err := s.DB.Model(&model.WorkcheckModel{}).Scopes(base).
		Where("workchecks.check_date = ?", helper.DayKey(now)).
		Count(&todayCount).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengecek workcheck hari ini")
	}
	out.HasCheckedToday = todayCount > 0

	// keys urut menaik; jalan mundur dari hari ini.
	for i := len(keys) - 1; i >= 0; i-- {
		if _, ok := have[keys[i]]; !ok {
			break
		}
		out.StreakDays++
	}

	return out, nil
}
