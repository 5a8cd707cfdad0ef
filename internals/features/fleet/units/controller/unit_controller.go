package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/fleet/units/dto"
	"armadacheck_backend/internals/features/fleet/units/service"
	helper "armadacheck_backend/internals/helpers"
)

type UnitController struct {
	Service  *service.UnitService
	Validate *validator.Validate
}

func NewUnitController(db *gorm.DB) *UnitController {
	return &UnitController{
		Service:  service.NewUnitService(db),
		Validate: validator.New(),
	}
}

// List: GET /api/admin/units?search=&include_deleted=true
func (ctrl *UnitController) List(c *fiber.Ctx) error {
	includeDeleted := c.Query("include_deleted") == "true"
	units, err := ctrl.Service.List(c.Query("search"), includeDeleted)
	if err != nil {
		return err
	}
	return helper.Success(c, "Daftar unit", units)
}

// GetByID: GET /api/admin/units/:id
func (ctrl *UnitController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	unit, err := ctrl.Service.GetByID(id)
	if err != nil {
		return err
	}
	return helper.Success(c, "Detail unit", unit)
}

// Create: POST /api/admin/units
func (ctrl *UnitController) Create(c *fiber.Ctx) error {
	var req dto.CreateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	unit, err := ctrl.Service.Create(req)
	if err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Unit dibuat", unit)
}

// Update: PUT /api/admin/units/:id
func (ctrl *UnitController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	unit, err := ctrl.Service.Update(id, req)
	if err != nil {
		return err
	}
	return helper.Success(c, "Unit diperbarui", unit)
}

// Delete: DELETE /api/admin/units/:id (soft delete)
func (ctrl *UnitController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ctrl.Service.SoftDelete(id); err != nil {
		return err
	}
	return helper.Success(c, "Unit dihapus", nil)
}

// Restore: POST /api/admin/units/:id/restore
func (ctrl *UnitController) Restore(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	unit, err := ctrl.Service.Restore(id)
	if err != nil {
		return err
	}
	return helper.Success(c, "Unit di-restore", unit)
}
