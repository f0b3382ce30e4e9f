package repository

import (
	"context"

	"github.com/techforge-labs/fulfillment/internal/domain/entity"
)

// ProfileRepository upserts customer profiles keyed by email. Profiles
// are never deleted by this service.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *entity.Profile) error
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
}
