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
	"armadacheck_backend/internals/helpers/oss"
)

type WorkcheckController struct {
	Service  *service.WorkcheckService
	Evidence *service.EvidenceService
	Validate *validator.Validate
}

func NewWorkcheckController(db *gorm.DB, blob oss.BlobService) *WorkcheckController {
	return &WorkcheckController{
		Service:  service.NewWorkcheckService(db),
		Evidence: service.NewEvidenceService(db, blob),
		Validate: validator.New(),
	}
}

// GetToday: GET /api/staff/workchecks/today
// Bila staff belum punya workcheck hari ini, kirim daftar unit yang masih
// tersedia supaya frontend menampilkan pemilihan kendaraan.
func (ctrl *WorkcheckController) GetToday(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}

	wc, err := ctrl.Service.GetToday(auth, time.Now())
	if err != nil {
		return err
	}
	if wc == nil {
		units, err := ctrl.Service.AvailableUnits(time.Now())
		if err != nil {
			return err
		}
		return helper.Success(c, "Belum ada workcheck hari ini", dto.VehicleSelectionResponse{
			HasVehicleSelected: false,
			AvailableUnits:     units,
		})
	}
	return helper.Success(c, "Workcheck hari ini", dto.FromWorkcheckModel(wc))
}

// Create: POST /api/staff/workchecks
func (ctrl *WorkcheckController) Create(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}

	var req dto.CreateWorkcheckRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	unitID, err := uuid.Parse(req.UnitID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Unit ID tidak valid")
	}

	wc, err := ctrl.Service.CreateToday(auth, unitID, time.Now())
	if err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Workcheck dibuat", dto.FromWorkcheckModel(wc))
}

// GetByID: GET /api/staff/workchecks/:id
func (ctrl *WorkcheckController) GetByID(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	wc, err := ctrl.Service.GetByID(auth, id)
	if err != nil {
		return err
	}
	return helper.Success(c, "Detail workcheck", dto.FromWorkcheckModel(wc))
}

// UpdateHoursMeter: PUT /api/staff/workchecks/hours-meter
func (ctrl *WorkcheckController) UpdateHoursMeter(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}

	var req dto.UpdateHoursRequest
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

	wc, err := ctrl.Service.UpdateHoursMeter(auth, id, *req.HoursMeter)
	if err != nil {
		return err
	}
	return helper.Success(c, "Hours meter disimpan", dto.FromWorkcheckModel(wc))
}

// UpdateItem: PUT /api/staff/workchecks/items
func (ctrl *WorkcheckController) UpdateItem(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}

	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Item ID tidak valid")
	}

	item, err := ctrl.Service.UpdateItem(auth, itemID, req.Field, req.Value)
	if err != nil {
		return err
	}
	return helper.Success(c, "Item disimpan", item)
}

// Submit: POST /api/staff/workchecks/submit
func (ctrl *WorkcheckController) Submit(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}

	var req dto.SubmitRequest
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

	wc, err := ctrl.Service.Submit(auth, id)
	if err != nil {
		return err
	}
	return helper.Success(c, "Workcheck disubmit untuk review", dto.FromWorkcheckModel(wc))
}

// History: GET /api/staff/workchecks/history
func (ctrl *WorkcheckController) History(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}

	filter := service.HistoryFilter{
		Status: c.Query("status"),
		Date:   c.Query("date"),
	}
	paging := helper.ResolvePaging(c, 10, 100)
	list, total, err := ctrl.Service.History(auth, filter, paging)
	if err != nil {
		return err
	}

	items := make([]dto.WorkcheckResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.FromWorkcheckModel(&list[i]))
	}
	return helper.Success(c, "Riwayat workcheck", fiber.Map{
		"workchecks": items,
		"pagination": helper.BuildPagination(total, paging, len(items)),
	})
}

// UploadItemImage: POST /api/staff/workchecks/items/:itemId/image
// multipart field "image".
func (ctrl *WorkcheckController) UploadItemImage(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Item ID tidak valid")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File foto wajib diunggah")
	}

	img, err := ctrl.Evidence.UploadItemImage(c.Context(), auth, itemID, fh, time.Now())
	if err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Foto evidence tersimpan", img)
}

// DeleteItemImage: DELETE /api/staff/workchecks/items/:itemId/image
func (ctrl *WorkcheckController) DeleteItemImage(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Item ID tidak valid")
	}

	if err := ctrl.Evidence.DeleteItemImage(c.Context(), auth, itemID); err != nil {
		return err
	}
	return helper.Success(c, "Foto evidence dihapus", nil)
}
