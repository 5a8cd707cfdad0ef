package dto

// FailingItem adalah item checklist dengan temuan terbanyak 30 hari terakhir.
type FailingItem struct {
	ItemID     string `json:"item_id"`
	Code       string `json:"code"`
	Label      string `json:"label"`
	IssueCount int    `json:"issue_count"`
}

// UnitCoverage: berapa dari 7 hari terakhir unit ini diperiksa.
type UnitCoverage struct {
	UnitID      string  `json:"unit_id"`
	UnitName    string  `json:"unit_name"`
	DaysChecked int     `json:"days_checked"`
	DaysTotal   int     `json:"days_total"`
	Coverage    float64 `json:"coverage"`
}

type AdminMetrics struct {
	TodayTotal     int64 `json:"today_total"`
	TodaySubmitted int64 `json:"today_submitted"`
	PendingReviews int64 `json:"pending_reviews"`

	// Jendela 30 hari.
	WindowWorkchecks int64          `json:"window_workchecks"`
	IssueRate        float64        `json:"issue_rate"`
	TopFailingItems  []FailingItem  `json:"top_failing_items"`
	AvgApprovalHours float64        `json:"avg_approval_hours"`
	VehicleCoverage  []UnitCoverage `json:"vehicle_coverage"`
}

type StaffMetrics struct {
	TotalWorkchecks int64 `json:"total_workchecks"`
	ApprovedCount   int64 `json:"approved_count"`
	RejectedCount   int64 `json:"rejected_count"`
	PendingCount    int64 `json:"pending_count"`
	StreakDays      int   `json:"streak_days"`
	HasCheckedToday bool  `json:"has_checked_today"`
}
