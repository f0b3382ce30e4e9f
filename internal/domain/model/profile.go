package model

import (
	"time"
)

// Profile represents a customer profile row. Email is the conflict
// target for upserts; user_id is only set when checkout was initiated
// from an authenticated session.
type Profile struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *string   `gorm:"size:100;index" json:"user_id,omitempty"`
	Email     string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Plan      string    `gorm:"not null;size:20;default:'free'" json:"plan"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}
