package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/techforge-labs/fulfillment/internal/domain/entity"
	"github.com/techforge-labs/fulfillment/internal/domain/model"
	"github.com/techforge-labs/fulfillment/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB, logger *zap.Logger) repository.ProfileRepository {
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert creates or updates a profile keyed by email, refreshing the
// plan and timestamp on conflict.
func (r *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	row := &model.Profile{
		Email:     profile.Email,
		Plan:      string(entity.PlanFree),
		UpdatedAt: profile.UpdatedAt,
	}

	// Checkout-time upserts carry no plan and webhook-driven ones carry
	// no user id; only overwrite what this upsert actually knows.
	updated := []string{"updated_at"}
	if profile.Plan != "" {
		row.Plan = string(profile.Plan)
		updated = append(updated, "plan")
	}
	if profile.UserID != "" {
		row.UserID = &profile.UserID
		updated = append(updated, "user_id")
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns(updated),
		}).
		Create(row).Error

	if err != nil {
		r.logger.Error("Failed to upsert profile",
			zap.String("email", profile.Email),
			zap.Error(err))
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// GetByEmail retrieves a profile by email
func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	var row model.Profile

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get profile",
			zap.String("email", email),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile := &entity.Profile{
		Email:     row.Email,
		Plan:      entity.Plan(row.Plan),
		UpdatedAt: row.UpdatedAt,
	}
	if row.UserID != nil {
		profile.UserID = *row.UserID
	}

	return profile, nil
}
