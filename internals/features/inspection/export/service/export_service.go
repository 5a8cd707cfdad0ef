package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/inspection/workcheck/model"
	helper "armadacheck_backend/internals/helpers"
)

type ExportService struct {
	DB *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{DB: db}
}

// ExportFilter membatasi record yang diekspor; semantiknya sama dengan filter
// daftar review admin.
type ExportFilter struct {
	Search   string // nama/username checker atau nama unit
	Status   string // pending | approved | rejected | ""
	DateFrom string // YYYY-MM-DD
	DateTo   string // YYYY-MM-DD
}

// ExportRow adalah satu baris flat hasil join untuk semua format keluaran.
type ExportRow struct {
	CheckDate   string
	StaffName   string
	Username    string
	Unit        string
	UnitType    string
	HoursMeter  string
	Status      string
	Approver    string
	ApprovedAt  string
	Comments    string
	ItemSummary string
}

var exportHeader = []string{
	"Date", "Staff Name", "Username", "Unit", "Unit Type", "Hours Meter",
	"Status", "Approved By", "Approved Date", "Comments", "Items",
}

// Filename menghasilkan nama file unduhan untuk tanggal ekspor.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("workcheck-records-%s.%s", now.Format(helper.DayKeyLayout), ext)
}

// Rows mengambil record sesuai filter dan meratakannya. Kosong = 400, supaya
// frontend tidak mengunduh file hampa.
func (s *ExportService) Rows(filter ExportFilter) ([]ExportRow, error) {
	switch filter.Status {
	case "pending", "approved", "rejected", "":
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Status filter tidak dikenal")
	}

	// Draft tidak pernah ikut laporan; hanya workcheck tersubmit yang diekspor.
	tx := s.DB.Model(&model.WorkcheckModel{}).
		Select("workchecks.*").
		Preload("Checker").Preload("Unit").
		Preload("Items.CheckItem").
		Preload("Approval.Approver").
		Where("workchecks.is_deleted = ? AND workchecks.is_submitted = ?", false, true)

	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Joins("JOIN users ON users.id = workchecks.checker_id").
			Joins("JOIN units ON units.id = workchecks.unit_id").
			Where(
				"LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(users.username) LIKE ? OR LOWER(units.name) LIKE ?",
				like, like, like, like,
			)
	}
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
	if filter.DateFrom != "" {
		tx = tx.Where("workchecks.check_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		tx = tx.Where("workchecks.check_date <= ?", filter.DateTo)
	}

	var list []model.WorkcheckModel
	if err := tx.Order("workchecks.check_date DESC").Find(&list).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data ekspor")
	}
	if len(list) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No data to export")
	}

	rows := make([]ExportRow, 0, len(list))
	for i := range list {
		rows = append(rows, flatten(&list[i]))
	}
	return rows, nil
}

func flatten(wc *model.WorkcheckModel) ExportRow {
	row := ExportRow{
		CheckDate: wc.CheckDate,
		Status:    string(wc.Approval.Status()),
	}
	if wc.Checker != nil {
		row.StaffName = wc.Checker.FullName()
		row.Username = wc.Checker.Username
	}
	if wc.Unit != nil {
		row.Unit = wc.Unit.Name
		row.UnitType = wc.Unit.Type
	}
	if wc.HoursMeter != nil {
		row.HoursMeter = fmt.Sprintf("%.1f", *wc.HoursMeter)
	}
	if wc.Approval != nil {
		if wc.Approval.Approver != nil {
			row.Approver = wc.Approval.Approver.FullName()
		}
		if wc.Approval.ApprovedAt != nil {
			row.ApprovedAt = wc.Approval.ApprovedAt.Format("2006-01-02 15:04")
		}
		if wc.Approval.Comments != nil {
			row.Comments = *wc.Approval.Comments
		}
	}

	items := make([]model.WorkcheckItemModel, len(wc.Items))
	copy(items, wc.Items)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := 0, 0
		if items[i].CheckItem != nil {
			a = items[i].CheckItem.SortOrder
		}
		if items[j].CheckItem != nil {
			b = items[j].CheckItem.SortOrder
		}
		return a < b
	})

	parts := make([]string, 0, len(items))
	for i := range items {
		actions := items[i].ActionList()
		if len(actions) == 0 {
			continue
		}
		// Katalog bisa saja sudah dihapus; pakai id snapshot agar baris tetap
		// bisa ditelusuri.
		code := items[i].ItemID.String()[:8]
		if items[i].CheckItem != nil {
			code = items[i].CheckItem.Code
		}
		parts = append(parts, fmt.Sprintf("%s:%s", code, strings.Join(actions, ",")))
	}
	row.ItemSummary = strings.Join(parts, " | ")

	return row
}

func (r ExportRow) cells() []string {
	return []string{
		r.CheckDate, r.StaffName, r.Username, r.Unit, r.UnitType, r.HoursMeter,
		r.Status, r.Approver, r.ApprovedAt, r.Comments, r.ItemSummary,
	}
}

// RenderCSV menghasilkan file CSV dengan header kolom.
func (s *ExportService) RenderCSV(rows []ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menulis CSV")
	}
	for _, row := range rows {
		if err := w.Write(row.cells()); err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menulis CSV")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menulis CSV")
	}
	return buf.Bytes(), nil
}

// RenderExcel menghasilkan workbook XLSX dengan header tebal dan freeze pane.
func (s *ExportService) RenderExcel(rows []ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Workchecks"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F81BD"}},
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyiapkan workbook")
	}

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	f.SetCellStyle(sheet, "A1", endHeader, headerStyle)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for i, row := range rows {
		for col, value := range row.cells() {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}
	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "E", 18)
	f.SetColWidth(sheet, "K", "K", 40)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menulis workbook")
	}
	return buf.Bytes(), nil
}

// RenderPDF menghasilkan tabel landscape A4 sederhana.
func (s *ExportService) RenderPDF(rows []ExportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Laporan Workcheck Armada")
	pdf.Ln(10)

	widths := []float64{20, 30, 24, 26, 20, 18, 18, 26, 26, 32, 37}

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(79, 129, 189)
	pdf.SetTextColor(255, 255, 255)
	for i, title := range exportHeader {
		pdf.CellFormat(widths[i], 7, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	for _, row := range rows {
		pdf.SetFillColor(240, 244, 250)
		for i, value := range row.cells() {
			if len(value) > 48 {
				value = value[:45] + "..."
			}
			pdf.CellFormat(widths[i], 6, value, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menulis PDF")
	}
	return buf.Bytes(), nil
}
