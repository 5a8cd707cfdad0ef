package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "armadacheck_backend/internals/features/users/user/model"
)

// ApprovalStatus adalah status review yang diturunkan dari kolom nullable,
// supaya seluruh service cukup dispatch pada enum ini dan tidak menebak arti
// null di tempat lain.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ApprovalModel adalah catatan keputusan review, satu-satu dengan workcheck.
// Dibuat saat submit pertama; resubmission setelah reject me-reset baris yang
// sama ke pending, tidak membuat baris baru.
type ApprovalModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WorkcheckID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"workcheck_id"`
	ApproverID  *uuid.UUID `gorm:"type:uuid" json:"approver_id,omitempty"`
	IsApproved  *bool      `json:"is_approved"`
	Comments    *string    `gorm:"type:text" json:"comments,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Approver *userModel.UserModel `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
}

func (ApprovalModel) TableName() string {
	return "approvals"
}

func (m *ApprovalModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *ApprovalModel) Status() ApprovalStatus {
	if m == nil || m.IsApproved == nil {
		return ApprovalPending
	}
	if *m.IsApproved {
		return ApprovalApproved
	}
	return ApprovalRejected
}

// ResetToPending mengosongkan hasil review untuk resubmission.
func (m *ApprovalModel) ResetToPending() {
	m.ApproverID = nil
	m.IsApproved = nil
	m.Comments = nil
	m.ApprovedAt = nil
}
