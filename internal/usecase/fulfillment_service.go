package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/techforge-labs/fulfillment/internal/domain/entity"
	domainErrors "github.com/techforge-labs/fulfillment/internal/domain/errors"
	"github.com/techforge-labs/fulfillment/internal/domain/provider"
	"github.com/techforge-labs/fulfillment/internal/domain/repository"
	"go.uber.org/zap"
)

// defaultOpTimeout bounds each collaborator round-trip so a slow
// upstream cannot hang the webhook past the gateway's own deadline.
const defaultOpTimeout = 10 * time.Second

// FulfillmentService drives the fulfillment of one verified payment
// event: profile activation, license issuance, commission recording and
// license delivery, idempotent over the event's unique identifier.
type FulfillmentService struct {
	licenseRepo   repository.LicenseRepository
	profileRepo   repository.ProfileRepository
	affiliateRepo repository.AffiliateRepository
	notifier      provider.Notifier
	catalog       *entity.AssetCatalog
	downloadBase  string
	logger        *zap.Logger
	opTimeout     time.Duration
}

// NewFulfillmentService creates a new fulfillment service instance
func NewFulfillmentService(
	licenseRepo repository.LicenseRepository,
	profileRepo repository.ProfileRepository,
	affiliateRepo repository.AffiliateRepository,
	notifier provider.Notifier,
	catalog *entity.AssetCatalog,
	downloadBase string,
	logger *zap.Logger,
) *FulfillmentService {
	return &FulfillmentService{
		licenseRepo:   licenseRepo,
		profileRepo:   profileRepo,
		affiliateRepo: affiliateRepo,
		notifier:      notifier,
		catalog:       catalog,
		downloadBase:  downloadBase,
		logger:        logger,
		opTimeout:     defaultOpTimeout,
	}
}

// ProcessEvent fulfills one verified checkout-completion event. The
// event ID is the idempotency key: a replay of an already-fulfilled
// event returns the existing license and reports success, so the
// payment gateway stops retrying.
//
// Failures before or during license issuance abort the event and leave
// it safely retryable. Commission recording and notification failures
// after the license is committed are logged but never rolled back.
func (s *FulfillmentService) ProcessEvent(ctx context.Context, ev *entity.FulfillmentEvent) (*entity.FulfillmentResult, error) {
	existing, err := s.lookupBySourceEvent(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.Info("Fulfillment event already processed, acknowledging",
			zap.String("event_id", ev.ID))
		return &entity.FulfillmentResult{License: existing, Deduplicated: true}, nil
	}

	if err := s.activateProfile(ctx, ev); err != nil {
		return nil, err
	}

	license, deduplicated, err := s.issueLicense(ctx, ev)
	if err != nil {
		return nil, err
	}
	if deduplicated {
		return &entity.FulfillmentResult{License: license, Deduplicated: true}, nil
	}

	s.recordCommission(ctx, ev)
	s.notify(ctx, license)

	s.logger.Info("Fulfillment completed",
		zap.String("event_id", ev.ID),
		zap.String("email", ev.Email),
		zap.String("plan", ev.Plan.String()))

	return &entity.FulfillmentResult{License: license}, nil
}

func (s *FulfillmentService) lookupBySourceEvent(ctx context.Context, eventID string) (*entity.License, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	license, err := s.licenseRepo.GetBySourceEvent(opCtx, eventID)
	if err != nil {
		return nil, domainErrors.NewUpstreamError("database", err)
	}
	return license, nil
}

func (s *FulfillmentService) activateProfile(ctx context.Context, ev *entity.FulfillmentEvent) error {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	profile := &entity.Profile{
		UserID:    ev.UserID,
		Email:     ev.Email,
		Plan:      ev.Plan,
		UpdatedAt: time.Now(),
	}

	if err := s.profileRepo.Upsert(opCtx, profile); err != nil {
		return domainErrors.NewUpstreamError("database", err)
	}

	return nil
}

// issueLicense generates a key and persists the license row. The key is
// never handed out unless the row committed. A concurrent duplicate of
// the same event loses the insert race and resolves to the winner's row.
func (s *FulfillmentService) issueLicense(ctx context.Context, ev *entity.FulfillmentEvent) (*entity.License, bool, error) {
	key, err := GenerateLicenseKey()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate license key: %w", err)
	}

	license := &entity.License{
		Key:           key,
		Email:         ev.Email,
		Plan:          ev.Plan,
		Status:        entity.LicenseStatusActive,
		SourceEventID: ev.ID,
		CreatedAt:     time.Now(),
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	err = s.licenseRepo.Issue(opCtx, license)
	if errors.Is(err, domainErrors.ErrDuplicateEvent) {
		winner, lookupErr := s.lookupBySourceEvent(ctx, ev.ID)
		if lookupErr != nil {
			return nil, false, lookupErr
		}
		if winner == nil {
			return nil, false, domainErrors.NewUpstreamError("database", domainErrors.ErrDuplicateEvent)
		}
		return winner, true, nil
	}
	if err != nil {
		return nil, false, domainErrors.NewUpstreamError("database", err)
	}

	return license, false, nil
}

func (s *FulfillmentService) recordCommission(ctx context.Context, ev *entity.FulfillmentEvent) {
	if ev.AffiliateCode == "" {
		return
	}

	gross := ev.GrossAmount()
	event := &entity.AffiliateEvent{
		AffiliateCode: ev.AffiliateCode,
		Email:         ev.Email,
		Plan:          ev.Plan,
		Amount:        gross,
		Commission:    entity.ComputeCommission(gross),
		SourceEventID: ev.ID,
		CreatedAt:     time.Now(),
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.affiliateRepo.Record(opCtx, event); err != nil {
		// The license is already committed; a lost commission is repaired
		// out of band rather than by failing the whole event.
		s.logger.Error("Failed to record affiliate commission",
			zap.String("event_id", ev.ID),
			zap.String("affiliate_code", ev.AffiliateCode),
			zap.Error(err))
	}
}

// notify sends the license email. Fire-and-forget: a delivery failure
// is logged and never rolls back the committed license state.
func (s *FulfillmentService) notify(ctx context.Context, license *entity.License) {
	links := make(map[string]string, len(s.catalog.Names()))
	for _, name := range s.catalog.Names() {
		links[name] = fmt.Sprintf("%s/download?template=%s&license=%s", s.downloadBase, name, license.Key)
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	notification := &provider.LicenseNotification{
		Email:         license.Email,
		Plan:          license.Plan,
		LicenseKey:    license.Key,
		DownloadLinks: links,
	}

	if err := s.notifier.SendLicenseIssued(opCtx, notification); err != nil {
		s.logger.Error("Failed to send license notification",
			zap.String("email", license.Email),
			zap.Error(err))
	}
}
