package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/techforge-labs/fulfillment/internal/domain/entity"
	"github.com/techforge-labs/fulfillment/internal/domain/model"
	"github.com/techforge-labs/fulfillment/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type affiliateRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAffiliateRepository creates a new affiliate ledger repository
func NewAffiliateRepository(db *gorm.DB, logger *zap.Logger) repository.AffiliateRepository {
	return &affiliateRepository{
		db:     db,
		logger: logger,
	}
}

// Record appends one commission row. The unique index on
// source_event_id makes replays of the same fulfillment event a no-op
// rather than a double payout.
func (r *affiliateRepository) Record(ctx context.Context, event *entity.AffiliateEvent) error {
	row := &model.AffiliateEvent{
		ID:            uuid.New(),
		AffiliateCode: event.AffiliateCode,
		Email:         event.Email,
		Plan:          string(event.Plan),
		Amount:        event.Amount,
		Commission:    event.Commission,
		SourceEventID: event.SourceEventID,
		CreatedAt:     event.CreatedAt,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_event_id"}},
			DoNothing: true,
		}).
		Create(row)

	if result.Error != nil {
		r.logger.Error("Failed to record affiliate event",
			zap.String("affiliate_code", event.AffiliateCode),
			zap.String("source_event_id", event.SourceEventID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to record affiliate event: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		r.logger.Info("Affiliate event already recorded, skipping",
			zap.String("source_event_id", event.SourceEventID))
	}

	return nil
}

// ListByCode returns the commission ledger for one affiliate code
func (r *affiliateRepository) ListByCode(ctx context.Context, code string) ([]*entity.AffiliateEvent, error) {
	var rows []model.AffiliateEvent

	err := r.db.WithContext(ctx).
		Where("affiliate_code = ?", code).
		Order("created_at DESC").
		Find(&rows).Error

	if err != nil {
		r.logger.Error("Failed to list affiliate events",
			zap.String("affiliate_code", code),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list affiliate events: %w", err)
	}

	events := make([]*entity.AffiliateEvent, len(rows))
	for i, row := range rows {
		events[i] = &entity.AffiliateEvent{
			AffiliateCode: row.AffiliateCode,
			Email:         row.Email,
			Plan:          entity.Plan(row.Plan),
			Amount:        row.Amount,
			Commission:    row.Commission,
			SourceEventID: row.SourceEventID,
			CreatedAt:     row.CreatedAt,
		}
	}

	return events, nil
}
