package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckItemModel adalah katalog langkah inspeksi yang dikelola admin.
// Kode selalu disimpan uppercase dan unik; sort_order integer >= 1.
type CheckItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string    `gorm:"size:20;not null;uniqueIndex" json:"code"`
	Label     string    `gorm:"size:255;not null" json:"label"`
	SortOrder int       `gorm:"not null;default:1" json:"sort_order"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CheckItemModel) TableName() string {
	return "check_items"
}

func (m *CheckItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
