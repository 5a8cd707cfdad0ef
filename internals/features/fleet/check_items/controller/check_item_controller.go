package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/fleet/check_items/dto"
	"armadacheck_backend/internals/features/fleet/check_items/service"
	helper "armadacheck_backend/internals/helpers"
)

type CheckItemController struct {
	Service  *service.CheckItemService
	Validate *validator.Validate
}

func NewCheckItemController(db *gorm.DB) *CheckItemController {
	return &CheckItemController{
		Service:  service.NewCheckItemService(db),
		Validate: validator.New(),
	}
}

// List: GET /api/admin/check-items?active_only=true
func (ctrl *CheckItemController) List(c *fiber.Ctx) error {
	items, err := ctrl.Service.List(c.Query("active_only") == "true")
	if err != nil {
		return err
	}
	return helper.Success(c, "Daftar item checklist", items)
}

// Create: POST /api/admin/check-items
func (ctrl *CheckItemController) Create(c *fiber.Ctx) error {
	var req dto.CreateCheckItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	item, err := ctrl.Service.Create(req)
	if err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Item checklist dibuat", item)
}

// Update: PUT /api/admin/check-items/:id
func (ctrl *CheckItemController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateCheckItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	item, err := ctrl.Service.Update(id, req)
	if err != nil {
		return err
	}
	return helper.Success(c, "Item checklist diperbarui", item)
}

// Move: PUT /api/admin/check-items/:id/move
func (ctrl *CheckItemController) Move(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.MoveCheckItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	items, err := ctrl.Service.Move(id, req.Direction)
	if err != nil {
		return err
	}
	return helper.Success(c, "Urutan item diperbarui", items)
}

// Delete: DELETE /api/admin/check-items/:id
func (ctrl *CheckItemController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ctrl.Service.Delete(id); err != nil {
		return err
	}
	return helper.Success(c, "Item checklist dihapus", nil)
}
