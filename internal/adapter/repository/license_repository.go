package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/techforge-labs/fulfillment/internal/domain/entity"
	domainErrors "github.com/techforge-labs/fulfillment/internal/domain/errors"
	"github.com/techforge-labs/fulfillment/internal/domain/model"
	"github.com/techforge-labs/fulfillment/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type licenseRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewLicenseRepository creates a new license repository
func NewLicenseRepository(db *gorm.DB, logger *zap.Logger) repository.LicenseRepository {
	return &licenseRepository{
		db:     db,
		logger: logger,
	}
}

// Issue persists a new license. The insert is guarded by the unique
// index on source_event_id: under concurrent delivery of the same
// fulfillment event exactly one row is created, and the losing writer
// gets ErrDuplicateEvent instead of a second row.
func (r *licenseRepository) Issue(ctx context.Context, license *entity.License) error {
	row := &model.License{
		Key:           license.Key,
		Email:         license.Email,
		Plan:          string(license.Plan),
		Status:        model.LicenseStatusActive,
		SourceEventID: license.SourceEventID,
		CreatedAt:     license.CreatedAt,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_event_id"}},
			DoNothing: true,
		}).
		Create(row)

	if result.Error != nil {
		r.logger.Error("Failed to issue license",
			zap.String("source_event_id", license.SourceEventID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to issue license: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domainErrors.ErrDuplicateEvent
	}

	return nil
}

// GetByKey retrieves a license by its key
func (r *licenseRepository) GetByKey(ctx context.Context, key string) (*entity.License, error) {
	var row model.License

	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrLicenseNotFound
		}
		r.logger.Error("Failed to get license by key", zap.Error(err))
		return nil, fmt.Errorf("failed to get license: %w", err)
	}

	return r.modelToEntity(&row), nil
}

// GetBySourceEvent retrieves the license issued for a fulfillment event,
// or nil when the event has not been processed yet.
func (r *licenseRepository) GetBySourceEvent(ctx context.Context, eventID string) (*entity.License, error) {
	var row model.License

	err := r.db.WithContext(ctx).
		Where("source_event_id = ?", eventID).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get license by source event",
			zap.String("source_event_id", eventID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get license by source event: %w", err)
	}

	return r.modelToEntity(&row), nil
}

// Revoke transitions a license from active to revoked
func (r *licenseRepository) Revoke(ctx context.Context, key string) (*entity.License, error) {
	var row model.License

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("key = ?", key).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.ErrLicenseNotFound
			}
			return fmt.Errorf("failed to get license: %w", err)
		}

		if row.Status == model.LicenseStatusRevoked {
			return domainErrors.ErrLicenseRevoked
		}

		now := time.Now()
		if err := tx.Model(&model.License{}).
			Where("key = ?", key).
			Updates(map[string]interface{}{
				"status":     model.LicenseStatusRevoked,
				"revoked_at": &now,
			}).Error; err != nil {
			return fmt.Errorf("failed to revoke license: %w", err)
		}

		row.Status = model.LicenseStatusRevoked
		row.RevokedAt = &now
		return nil
	})

	if err != nil {
		if !errors.Is(err, domainErrors.ErrLicenseNotFound) && !errors.Is(err, domainErrors.ErrLicenseRevoked) {
			r.logger.Error("Failed to revoke license", zap.Error(err))
		}
		return nil, err
	}

	r.logger.Info("License revoked", zap.String("email", row.Email))

	return r.modelToEntity(&row), nil
}

// modelToEntity converts database model to domain entity
func (r *licenseRepository) modelToEntity(m *model.License) *entity.License {
	if m == nil {
		return nil
	}

	return &entity.License{
		Key:           m.Key,
		Email:         m.Email,
		Plan:          entity.Plan(m.Plan),
		Status:        entity.LicenseStatus(m.Status),
		SourceEventID: m.SourceEventID,
		CreatedAt:     m.CreatedAt,
	}
}
