package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"armadacheck_backend/internals/constants"
)

// UserModel merepresentasikan tabel users (staff & admin)
type UserModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	Username    string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password    string     `gorm:"not null" json:"-"`
	Role        string     `gorm:"type:varchar(20);not null;default:'STAFF'" json:"role"`
	PhoneNumber *string    `gorm:"size:30" json:"phone_number,omitempty"`
	UserImage   *string    `gorm:"size:512" json:"user_image,omitempty"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Role == "" {
		m.Role = constants.RoleStaff
	}
	return nil
}

// FullName gabungan nama depan + belakang untuk tampilan.
func (m *UserModel) FullName() string {
	return m.FirstName + " " + m.LastName
}
