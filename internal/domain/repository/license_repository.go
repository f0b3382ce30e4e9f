package repository

import (
	"context"

	"github.com/techforge-labs/fulfillment/internal/domain/entity"
)

// LicenseRepository persists license grants and enforces their
// uniqueness guarantees. Issue must be atomic: concurrent attempts for
// the same source event produce exactly one row, with the losing writer
// observing errors.ErrDuplicateEvent.
type LicenseRepository interface {
	Issue(ctx context.Context, license *entity.License) error
	GetByKey(ctx context.Context, key string) (*entity.License, error)
	GetBySourceEvent(ctx context.Context, eventID string) (*entity.License, error)
	Revoke(ctx context.Context, key string) (*entity.License, error)
}
