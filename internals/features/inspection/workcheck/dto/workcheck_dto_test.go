package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	checkItemModel "armadacheck_backend/internals/features/fleet/check_items/model"
	unitModel "armadacheck_backend/internals/features/fleet/units/model"
	"armadacheck_backend/internals/features/inspection/workcheck/model"
)

func TestFromWorkcheckModelSortsItems(t *testing.T) {
	wc := &model.WorkcheckModel{
		ID:        uuid.New(),
		UnitID:    uuid.New(),
		CheckDate: "2026-08-28",
		CreatedAt: time.Now(),
		Unit:      &unitModel.UnitModel{ID: uuid.New(), Name: "Excavator 01", Type: "EXCAVATOR"},
		Items: []model.WorkcheckItemModel{
			{
				ID: uuid.New(), Actions: datatypes.JSON([]byte(`["P"]`)),
				CheckItem: &checkItemModel.CheckItemModel{Code: "BAN", SortOrder: 2},
			},
			{
				ID: uuid.New(), Actions: datatypes.JSON([]byte(`[]`)),
				CheckItem: &checkItemModel.CheckItemModel{Code: "OLI", SortOrder: 1},
				Images:    []model.WorkcheckItemImageModel{{FileName: "https://blob.test/a.jpg"}},
			},
		},
	}

	resp := FromWorkcheckModel(wc)

	// Urutan presentasi mengikuti sort_order katalog, bukan urutan DB.
	assert.Equal(t, "OLI", resp.Items[0].CheckItem.Code)
	assert.Equal(t, "BAN", resp.Items[1].CheckItem.Code)

	assert.Equal(t, []string{}, resp.Items[0].Actions)
	assert.Equal(t, []string{"https://blob.test/a.jpg"}, resp.Items[0].Images)
	assert.Equal(t, []string{"P"}, resp.Items[1].Actions)

	assert.True(t, resp.HasVehicleSelected)
	assert.Nil(t, resp.Approval)
	assert.Equal(t, "Excavator 01", resp.Unit.Name)
}

func TestFromWorkcheckModelApprovalInfo(t *testing.T) {
	approved := true
	now := time.Now()
	wc := &model.WorkcheckModel{
		ID:          uuid.New(),
		CheckDate:   "2026-08-28",
		IsSubmitted: true,
		Approval: &model.ApprovalModel{
			IsApproved: &approved,
			ApprovedAt: &now,
		},
	}

	resp := FromWorkcheckModel(wc)
	assert.True(t, resp.IsSubmitted)
	assert.NotNil(t, resp.Approval)
	assert.Equal(t, model.ApprovalApproved, resp.Approval.Status)
}
