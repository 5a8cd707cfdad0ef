package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"armadacheck_backend/internals/features/dashboard/service"
	helper "armadacheck_backend/internals/helpers"
	"armadacheck_backend/internals/helpers/authctx"
)

type DashboardController struct {
	Service *service.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{Service: service.NewDashboardService(db)}
}

// AdminMetrics: GET /api/admin/dashboard
func (ctrl *DashboardController) AdminMetrics(c *fiber.Ctx) error {
	metrics, err := ctrl.Service.AdminMetrics(time.Now())
	if err != nil {
		return err
	}
	return helper.Success(c, "Metrik dashboard admin", metrics)
}

// StaffMetrics: GET /api/staff/dashboard
func (ctrl *DashboardController) StaffMetrics(c *fiber.Ctx) error {
	auth, err := authctx.FromFiber(c)
	if err != nil {
		return err
	}
	metrics, err := ctrl.Service.StaffMetrics(auth, time.Now())
	if err != nil {
		return err
	}
	return helper.Success(c, "Metrik dashboard staff", metrics)
}
