package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/inspection/workcheck/dto"
	"armadacheck_backend/internals/features/inspection/workcheck/service"
	helper "armadacheck_backend/internals/helpers"
	"armadacheck_backend/internals/helpers/authctx"
)

type ApprovalController struct {
	Service  *service.ApprovalService
	Validate *validator.Validate
}

func NewApprovalController(db *gorm.DB) *ApprovalController {
	return &ApprovalController{
		Service:  service.NewApprovalService(db),
		Validate: validator.New(),
	}
}

// List: GET /api/admin/workchecks?search=&status=&date_from=&date_to=&page=&per_page=
func (ctrl *ApprovalController) List(c *fiber.Ctx) error {
	filter := service.AdminListFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
	paging := helper.ResolvePaging(c, 10, 100)

	list, total, err := ctrl.Service.AdminList(filter, paging)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(list))
	for i := range list {
		wc := &list[i]
		row := fiber.Map{
			"workcheck": dto.FromWorkcheckModel(wc),
		}
		if wc.Checker != nil {
			row["checker"] = fiber.Map{
				"id":       wc.Checker.ID,
				"name":     wc.Checker.FullName(),
				"username": wc.Checker.Username,
			}
		}
		items = append(items, row)
	}
	return helper.Success(c, "Daftar workcheck", fiber.Map{
		"workchecks": items,
		"pagination": helper.BuildPagination(total, paging, len(items)),
	})
}

// Decide: POST /api/admin/workchecks/decision
func (ctrl *ApprovalController) Decide(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}

	var req dto.DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	id, err := uuid.Parse(req.WorkcheckID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Workcheck ID tidak valid")
	}

	wc, err := ctrl.Service.Decide(auth, id, *req.IsApproved, req.Comments, time.Now())
	if err != nil {
		return err
	}

	msg := "Workcheck disetujui"
	if !*req.IsApproved {
		msg = "Workcheck ditolak"
	}
	return helper.Success(c, msg, dto.FromWorkcheckModel(wc))
}
