package dto

import (
	"sort"
	"time"

	"github.com/google/uuid"

	unitModel "armadacheck_backend/internals/features/fleet/units/model"
	"armadacheck_backend/internals/features/inspection/workcheck/model"
)

/* ===============================
   Request DTOs
=================================*/

type CreateWorkcheckRequest struct {
	UnitID string `json:"unitId" validate:"required,uuid4"`
}

type UpdateItemRequest struct {
	ItemID string `json:"itemId" validate:"required,uuid4"`
	Field  string `json:"field" validate:"required,oneof=actions note"`
	Value  string `json:"value"`
}

type UpdateHoursRequest struct {
	WorkcheckID string   `json:"workcheckId" validate:"required,uuid4"`
	HoursMeter  *float64 `json:"hours_meter" validate:"required,gte=0"`
}

type SubmitRequest struct {
	WorkcheckID string `json:"workcheckId" validate:"required,uuid4"`
}

type DecideRequest struct {
	WorkcheckID string  `json:"workcheckId" validate:"required,uuid4"`
	IsApproved  *bool   `json:"isApproved" validate:"required"`
	Comments    *string `json:"comments"`
}

/* ===============================
   Response DTOs (transform gabungan untuk frontend)
=================================*/

type CheckItemInfo struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
}

type WorkcheckItemResponse struct {
	ID        uuid.UUID     `json:"id"`
	ItemID    uuid.UUID     `json:"item_id"`
	Actions   []string      `json:"actions"`
	Note      string        `json:"note"`
	Images    []string      `json:"images"`
	CheckItem CheckItemInfo `json:"checkItem"`
}

type UnitInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	NumberPlate *string   `json:"number_plate,omitempty"`
}

type ApprovalInfo struct {
	Status       model.ApprovalStatus `json:"status"`
	IsApproved   *bool                `json:"is_approved"`
	Comments     *string              `json:"comments,omitempty"`
	ApprovedAt   *time.Time           `json:"approved_at,omitempty"`
	ApproverName *string              `json:"approver_name,omitempty"`
}

type WorkcheckResponse struct {
	ID                 uuid.UUID               `json:"id"`
	UnitID             uuid.UUID               `json:"unit_id"`
	CheckDate          string                  `json:"check_date"`
	HoursMeter         *float64                `json:"hours_meter,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
	Unit               *UnitInfo               `json:"unit,omitempty"`
	Items              []WorkcheckItemResponse `json:"WorkcheckItems"`
	IsSubmitted        bool                    `json:"isSubmitted"`
	Approval           *ApprovalInfo           `json:"approval,omitempty"`
	HasVehicleSelected bool                    `json:"hasVehicleSelected"`
}

// VehicleSelectionResponse dikirim bila staff belum punya workcheck hari ini.
type VehicleSelectionResponse struct {
	HasVehicleSelected bool                  `json:"hasVehicleSelected"`
	AvailableUnits     []unitModel.UnitModel `json:"availableUnits"`
}

func FromWorkcheckModel(wc *model.WorkcheckModel) WorkcheckResponse {
	resp := WorkcheckResponse{
		ID:                 wc.ID,
		UnitID:             wc.UnitID,
		CheckDate:          wc.CheckDate,
		HoursMeter:         wc.HoursMeter,
		CreatedAt:          wc.CreatedAt,
		IsSubmitted:        wc.IsSubmitted,
		HasVehicleSelected: true,
	}

	if wc.Unit != nil {
		resp.Unit = &UnitInfo{
			ID:          wc.Unit.ID,
			Name:        wc.Unit.Name,
			Type:        wc.Unit.Type,
			NumberPlate: wc.Unit.NumberPlate,
		}
	}

	if wc.Approval != nil {
		info := ApprovalInfo{
			Status:     wc.Approval.Status(),
			IsApproved: wc.Approval.IsApproved,
			Comments:   wc.Approval.Comments,
			ApprovedAt: wc.Approval.ApprovedAt,
		}
		if wc.Approval.Approver != nil {
			name := wc.Approval.Approver.FullName()
			info.ApproverName = &name
		}
		resp.Approval = &info
	}

	items := make([]WorkcheckItemResponse, 0, len(wc.Items))
	for i := range wc.Items {
		items = append(items, fromItemModel(&wc.Items[i]))
	}
	// urut mengikuti sort_order katalog
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CheckItem.SortOrder < items[j].CheckItem.SortOrder
	})
	resp.Items = items

	return resp
}

func fromItemModel(item *model.WorkcheckItemModel) WorkcheckItemResponse {
	actions := item.ActionList()
	if actions == nil {
		actions = []string{}
	}

	images := make([]string, 0, len(item.Images))
	for _, img := range item.Images {
		images = append(images, img.FileName)
	}

	resp := WorkcheckItemResponse{
		ID:      item.ID,
		ItemID:  item.ItemID,
		Actions: actions,
		Note:    item.Note,
		Images:  images,
	}
	if item.CheckItem != nil {
		resp.CheckItem = CheckItemInfo{
			ID:        item.CheckItem.ID,
			Code:      item.CheckItem.Code,
			Label:     item.CheckItem.Label,
			SortOrder: item.CheckItem.SortOrder,
			IsActive:  item.CheckItem.IsActive,
		}
	}
	return resp
}
