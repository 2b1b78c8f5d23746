package model

import (
	"time"
)

// PasswordResetRequest is an audit row recorded for every forgot-password
// call. The reset token itself lives in the cache, never here. UserID is nil
// when the requested email did not match an account.
type PasswordResetRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (PasswordResetRequest) TableName() string {
	return "password_reset_requests"
}
