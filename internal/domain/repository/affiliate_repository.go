package repository

import (
	"context"

	"github.com/techforge-labs/fulfillment/internal/domain/entity"
)

// AffiliateRepository records referral commissions. Record is
// append-only and deduplicated on the source event ID so a replayed
// fulfillment event can never double-pay an affiliate.
type AffiliateRepository interface {
	Record(ctx context.Context, event *entity.AffiliateEvent) error
	ListByCode(ctx context.Context, code string) ([]*entity.AffiliateEvent, error)
}
