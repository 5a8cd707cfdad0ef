package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	checkItemModel "armadacheck_backend/internals/features/fleet/check_items/model"
	unitModel "armadacheck_backend/internals/features/fleet/units/model"
	userModel "armadacheck_backend/internals/features/users/user/model"
)

// WorkcheckModel adalah catatan inspeksi harian: satu per staff per hari,
// satu per unit per hari. Kedua aturan itu dijaga unique index komposit pada
// check_date sehingga create yang balapan tetap gagal di DB, bukan cuma di
// lookup aplikasi.
type WorkcheckModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CheckerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_workchecks_checker_day,priority:1" json:"checker_id"`
	UnitID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_workchecks_unit_day,priority:1" json:"unit_id"`
	CheckDate   string    `gorm:"size:10;not null;uniqueIndex:uq_workchecks_checker_day,priority:2;uniqueIndex:uq_workchecks_unit_day,priority:2" json:"check_date"`
	HoursMeter  *float64  `json:"hours_meter,omitempty"`
	IsSubmitted bool      `gorm:"not null;default:false" json:"is_submitted"`
	IsDeleted   bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Checker  *userModel.UserModel `gorm:"foreignKey:CheckerID" json:"checker,omitempty"`
	Unit     *unitModel.UnitModel `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Items    []WorkcheckItemModel `gorm:"foreignKey:WorkcheckID" json:"items,omitempty"`
	Approval *ApprovalModel       `gorm:"foreignKey:WorkcheckID" json:"approval,omitempty"`
}

func (WorkcheckModel) TableName() string {
	return "workchecks"
}

func (m *WorkcheckModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// WorkcheckItemModel adalah satu baris checklist dalam workcheck — snapshot
// dari CheckItem aktif saat workcheck dibuat. Perubahan katalog setelahnya
// tidak mengubah set item workcheck yang sudah ada.
type WorkcheckItemModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	WorkcheckID uuid.UUID      `gorm:"type:uuid;not null;index" json:"workcheck_id"`
	ItemID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	Actions     datatypes.JSON `gorm:"not null" json:"actions"`
	Note        string         `gorm:"type:text;not null;default:''" json:"note"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	CheckItem *checkItemModel.CheckItemModel `gorm:"foreignKey:ItemID" json:"check_item,omitempty"`
	Images    []WorkcheckItemImageModel      `gorm:"foreignKey:ItemID" json:"images,omitempty"`
}

func (WorkcheckItemModel) TableName() string {
	return "workcheck_items"
}

func (m *WorkcheckItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if len(m.Actions) == 0 {
		m.Actions = datatypes.JSON([]byte("[]"))
	}
	return nil
}

// ActionList mengurai kolom actions menjadi slice kode aksi.
func (m *WorkcheckItemModel) ActionList() []string {
	var actions []string
	if err := json.Unmarshal(m.Actions, &actions); err != nil {
		return nil
	}
	return actions
}

// IsComplete: item selesai ⟺ minimal satu aksi DAN tepat satu foto evidence.
func (m *WorkcheckItemModel) IsComplete() bool {
	return len(m.ActionList()) > 0 && len(m.Images) == 1
}

// WorkcheckItemImageModel menyimpan foto evidence per item. Unique index di
// item_id memastikan maksimal satu foto per item walau upload balapan.
type WorkcheckItemImageModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"item_id"`
	FileName   string    `gorm:"size:512;not null" json:"file_name"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (WorkcheckItemImageModel) TableName() string {
	return "workcheck_item_images"
}

func (m *WorkcheckItemImageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
