package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/users/user/dto"
	"armadacheck_backend/internals/features/users/user/service"
	helper "armadacheck_backend/internals/helpers"
	"armadacheck_backend/internals/helpers/authctx"
)

type UserAdminController struct {
	Service  *service.UserService
	Validate *validator.Validate
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{
		Service:  service.NewUserService(db),
		Validate: validator.New(),
	}
}

// List: GET /api/admin/users?search=&role=&page=&per_page=
func (ctrl *UserAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)
	users, total, err := ctrl.Service.List(c.Query("search"), c.Query("role"), paging)
	if err != nil {
		return err
	}
	return helper.Success(c, "Daftar user", fiber.Map{
		"users":      users,
		"pagination": helper.BuildPagination(total, paging, len(users)),
	})
}

// GetByID: GET /api/admin/users/:id
func (ctrl *UserAdminController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	user, err := ctrl.Service.GetByID(id)
	if err != nil {
		return err
	}
	return helper.Success(c, "Detail user", user)
}

// Create: POST /api/admin/users
func (ctrl *UserAdminController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Service.Create(req)
	if err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "User dibuat", user)
}

// Update: PUT /api/admin/users/:id
func (ctrl *UserAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Service.Update(id, req)
	if err != nil {
		return err
	}
	return helper.Success(c, "User diperbarui", user)
}

// ToggleStatus: POST /api/admin/users/:id/toggle-status
func (ctrl *UserAdminController) ToggleStatus(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	user, err := ctrl.Service.ToggleStatus(auth, id)
	if err != nil {
		return err
	}

	msg := "User dinonaktifkan"
	if user.IsActive {
		msg = "User diaktifkan"
	}
	return helper.Success(c, msg, user)
}

// Delete: DELETE /api/admin/users/:id
func (ctrl *UserAdminController) Delete(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctrl.Service.Delete(auth, id); err != nil {
		return err
	}
	return helper.Success(c, "User dihapus", nil)
}
