package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnitModel merepresentasikan kendaraan/armada yang diinspeksi harian.
// Soft delete: unit yang sudah direferensikan workcheck tidak pernah di-hard-delete.
type UnitModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Type        string     `gorm:"size:50;not null" json:"type"`
	NumberPlate *string    `gorm:"size:30" json:"number_plate,omitempty"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UnitModel) TableName() string {
	return "units"
}

func (m *UnitModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
