package model

import (
	"database/sql/driver"
	"time"
)

// LicenseStatus represents the status of a license
type LicenseStatus string

const (
	LicenseStatusActive  LicenseStatus = "active"
	LicenseStatusRevoked LicenseStatus = "revoked"
)

// Scan implements sql.Scanner interface
func (s *LicenseStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = LicenseStatus(v)
	case []byte:
		*s = LicenseStatus(v)
	default:
		*s = LicenseStatusRevoked
	}
	return nil
}

// Value implements driver.Valuer interface
func (s LicenseStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// License represents an issued license row. Both key and
// source_event_id carry unique indexes: the first guards global key
// uniqueness, the second makes issuance idempotent per fulfillment
// event under at-least-once webhook delivery.
type License struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Key           string        `gorm:"uniqueIndex;not null;size:40" json:"key"`
	Email         string        `gorm:"not null;size:255;index" json:"email"`
	Plan          string        `gorm:"not null;size:20" json:"plan"`
	Status        LicenseStatus `gorm:"type:license_status;not null;default:'active'" json:"status"`
	SourceEventID string        `gorm:"uniqueIndex;not null;size:255" json:"source_event_id"`
	CreatedAt     time.Time     `gorm:"default:now()" json:"created_at"`
	RevokedAt     *time.Time    `json:"revoked_at,omitempty"`
}

// TableName specifies the table name for GORM
func (License) TableName() string {
	return "licenses"
}
