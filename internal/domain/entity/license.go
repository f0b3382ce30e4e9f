package entity

import "time"

// LicenseStatus represents the lifecycle state of a license.
type LicenseStatus string

const (
	LicenseStatusActive  LicenseStatus = "active"
	LicenseStatusRevoked LicenseStatus = "revoked"
)

// License is a redeemable grant of access tied to an email and a plan.
// A license is immutable once issued except for the active -> revoked
// status transition.
type License struct {
	Key           string        `json:"key"`
	Email         string        `json:"email"`
	Plan          Plan          `json:"plan"`
	Status        LicenseStatus `json:"status"`
	SourceEventID string        `json:"source_event_id"`
	CreatedAt     time.Time     `json:"created_at"`
}

// IsActive reports whether the license can still be redeemed.
func (l *License) IsActive() bool {
	return l.Status == LicenseStatusActive
}
