package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/inspection/export/service"
	helper "armadacheck_backend/internals/helpers"
)

type ExportController struct {
	Service *service.ExportService
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{Service: service.NewExportService(db)}
}

// Export: GET /api/admin/export/workchecks?search=&status=&date=&export=csv|excel|pdf
func (ctrl *ExportController) Export(c *fiber.Ctx) error {
	filter := service.ExportFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
	// ?date= menyaring satu hari persis.
	if day := c.Query("date"); day != "" {
		filter.DateFrom, filter.DateTo = day, day
	}

	rows, err := ctrl.Service.Rows(filter)
	if err != nil {
		return err
	}

	now := time.Now()
	format := c.Query("export", "csv")

	var payload []byte
	var filename, contentType string

	switch format {
	case "csv":
		payload, err = ctrl.Service.RenderCSV(rows)
		filename = service.Filename("csv", now)
		contentType = "text/csv"
	case "excel":
		payload, err = ctrl.Service.RenderExcel(rows)
		filename = service.Filename("xlsx", now)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		payload, err = ctrl.Service.RenderPDF(rows)
		filename = service.Filename("pdf", now)
		contentType = "application/pdf"
	default:
		return helper.Error(c, fiber.StatusBadRequest, "Format tidak dikenal: csv, excel, atau pdf")
	}
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(payload)
}
