package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/techforge-labs/fulfillment/internal/domain/entity"
	domainErrors "github.com/techforge-labs/fulfillment/internal/domain/errors"
	"github.com/techforge-labs/fulfillment/internal/domain/repository"
	"go.uber.org/zap"
)

// DenyReason is a machine-stable reason for a denied access check.
type DenyReason string

const (
	DenyInvalidLicense   DenyReason = "invalid-license"
	DenyInactive         DenyReason = "inactive"
	DenyUnknownAsset     DenyReason = "unknown-asset"
	DenyInsufficientPlan DenyReason = "insufficient-plan"
)

// Decision is the outcome of an entitlement check.
type Decision struct {
	Allowed      bool
	Reason       DenyReason
	RequiredPlan entity.Plan
	License      *entity.License
	Asset        entity.Asset
}

// Message renders a short human-readable reason for a denial.
func (d *Decision) Message() string {
	switch d.Reason {
	case DenyInvalidLicense:
		return "Invalid license"
	case DenyInactive:
		return "License not active"
	case DenyUnknownAsset:
		return "Invalid template"
	case DenyInsufficientPlan:
		return fmt.Sprintf("Plan upgrade required: %s", d.RequiredPlan)
	default:
		return "Access denied"
	}
}

// EntitlementService decides whether a license grants access to an
// asset by comparing the license plan's rank against the asset's
// minimum plan. The check is pure: it never mutates the license.
type EntitlementService struct {
	licenseRepo repository.LicenseRepository
	catalog     *entity.AssetCatalog
	logger      *zap.Logger
}

// NewEntitlementService creates a new entitlement service instance
func NewEntitlementService(licenseRepo repository.LicenseRepository, catalog *entity.AssetCatalog, logger *zap.Logger) *EntitlementService {
	return &EntitlementService{
		licenseRepo: licenseRepo,
		catalog:     catalog,
		logger:      logger,
	}
}

// CheckAccess validates the license key against the requested template.
// A denial is a normal Decision, not an error; errors are reserved for
// collaborator failures.
func (s *EntitlementService) CheckAccess(ctx context.Context, licenseKey, template string) (*Decision, error) {
	license, err := s.licenseRepo.GetByKey(ctx, licenseKey)
	if err != nil {
		if errors.Is(err, domainErrors.ErrLicenseNotFound) {
			return &Decision{Reason: DenyInvalidLicense}, nil
		}
		return nil, domainErrors.NewUpstreamError("database", err)
	}

	if !license.IsActive() {
		return &Decision{Reason: DenyInactive, License: license}, nil
	}

	asset, ok := s.catalog.Resolve(template)
	if !ok {
		return &Decision{Reason: DenyUnknownAsset, License: license}, nil
	}

	if !license.Plan.Covers(asset.MinPlan) {
		s.logger.Info("Access denied, insufficient plan",
			zap.String("template", asset.Name),
			zap.String("license_plan", license.Plan.String()),
			zap.String("required_plan", asset.MinPlan.String()))
		return &Decision{
			Reason:       DenyInsufficientPlan,
			RequiredPlan: asset.MinPlan,
			License:      license,
			Asset:        asset,
		}, nil
	}

	return &Decision{Allowed: true, License: license, Asset: asset}, nil
}
