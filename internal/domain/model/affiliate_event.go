package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AffiliateEvent represents one commissioned sale. Rows are append-only;
// the unique index on source_event_id collapses webhook replays into a
// single commission.
type AffiliateEvent struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AffiliateCode string          `gorm:"not null;size:64;index" json:"affiliate_code"`
	Email         string          `gorm:"not null;size:255" json:"email"`
	Plan          string          `gorm:"not null;size:20" json:"plan"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Commission    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"commission"`
	SourceEventID string          `gorm:"uniqueIndex;not null;size:255" json:"source_event_id"`
	CreatedAt     time.Time       `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (AffiliateEvent) TableName() string {
	return "affiliate_events"
}
