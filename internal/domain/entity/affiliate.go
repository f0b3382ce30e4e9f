package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionRate is the fixed share of the gross sale amount credited
// to the referring affiliate.
var CommissionRate = decimal.NewFromFloat(0.20)

// AffiliateEvent is one commissioned sale, recorded append-only against
// the fulfillment event that produced it.
type AffiliateEvent struct {
	AffiliateCode string          `json:"affiliate_code"`
	Email         string          `json:"email"`
	Plan          Plan            `json:"plan"`
	Amount        decimal.Decimal `json:"amount"`
	Commission    decimal.Decimal `json:"commission"`
	SourceEventID string          `json:"source_event_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ComputeCommission derives the commission for a gross amount. The
// result is rounded to the smallest currency unit and never recomputed
// after it has been recorded.
func ComputeCommission(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(CommissionRate).Round(2)
}
