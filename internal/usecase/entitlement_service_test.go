package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/techforge-labs/fulfillment/internal/domain/entity"
	domainErrors "github.com/techforge-labs/fulfillment/internal/domain/errors"
	"go.uber.org/zap"
)

func activeLicense(plan entity.Plan) *entity.License {
	return &entity.License{
		Key:    "TF-AAAAAAA-BBBBBBB-CCCCCCC-DDDDDDD",
		Email:  "buyer@example.com",
		Plan:   plan,
		Status: entity.LicenseStatusActive,
	}
}

func TestCheckAccessTierMatrix(t *testing.T) {
	tests := []struct {
		name     string
		plan     entity.Plan
		template string
		allowed  bool
	}{
		{name: "free denied saas", plan: entity.PlanFree, template: "saas", allowed: false},
		{name: "starter allowed saas", plan: entity.PlanStarter, template: "saas", allowed: true},
		{name: "starter denied ai", plan: entity.PlanStarter, template: "ai", allowed: false},
		{name: "pro allowed saas", plan: entity.PlanPro, template: "saas", allowed: true},
		{name: "pro allowed ai", plan: entity.PlanPro, template: "ai", allowed: true},
		{name: "pro denied agency", plan: entity.PlanPro, template: "agency", allowed: false},
		{name: "agency allowed everything", plan: entity.PlanAgency, template: "agency", allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			licenseRepo := new(MockLicenseRepository)
			license := activeLicense(tt.plan)
			licenseRepo.On("GetByKey", mock.Anything, license.Key).Return(license, nil)

			svc := NewEntitlementService(licenseRepo, entity.DefaultCatalog(), zap.NewNop())
			decision, err := svc.CheckAccess(context.Background(), license.Key, tt.template)

			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.Equal(t, DenyInsufficientPlan, decision.Reason)
				assert.NotEmpty(t, decision.RequiredPlan)
				assert.Contains(t, decision.Message(), string(decision.RequiredPlan))
			}
		})
	}
}

func TestCheckAccessUnknownKey(t *testing.T) {
	licenseRepo := new(MockLicenseRepository)
	licenseRepo.On("GetByKey", mock.Anything, "TF-NOPE").Return(nil, domainErrors.ErrLicenseNotFound)

	svc := NewEntitlementService(licenseRepo, entity.DefaultCatalog(), zap.NewNop())
	decision, err := svc.CheckAccess(context.Background(), "TF-NOPE", "saas")

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, DenyInvalidLicense, decision.Reason)
}

func TestCheckAccessRevokedLicense(t *testing.T) {
	licenseRepo := new(MockLicenseRepository)
	license := activeLicense(entity.PlanAgency)
	license.Status = entity.LicenseStatusRevoked
	licenseRepo.On("GetByKey", mock.Anything, license.Key).Return(license, nil)

	svc := NewEntitlementService(licenseRepo, entity.DefaultCatalog(), zap.NewNop())
	decision, err := svc.CheckAccess(context.Background(), license.Key, "saas")

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, DenyInactive, decision.Reason)
}

func TestCheckAccessUnknownTemplate(t *testing.T) {
	licenseRepo := new(MockLicenseRepository)
	license := activeLicense(entity.PlanAgency)
	licenseRepo.On("GetByKey", mock.Anything, license.Key).Return(license, nil)

	svc := NewEntitlementService(licenseRepo, entity.DefaultCatalog(), zap.NewNop())
	decision, err := svc.CheckAccess(context.Background(), license.Key, "ecommerce")

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, DenyUnknownAsset, decision.Reason)
}

func TestCheckAccessRepositoryFailure(t *testing.T) {
	licenseRepo := new(MockLicenseRepository)
	licenseRepo.On("GetByKey", mock.Anything, mock.Anything).Return(nil, errors.New("database down"))

	svc := NewEntitlementService(licenseRepo, entity.DefaultCatalog(), zap.NewNop())
	decision, err := svc.CheckAccess(context.Background(), "TF-ANY", "saas")

	require.Error(t, err)
	assert.Nil(t, decision)
	assert.True(t, domainErrors.IsUpstream(err))
}
