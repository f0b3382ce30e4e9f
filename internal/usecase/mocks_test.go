package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/techforge-labs/fulfillment/internal/domain/entity"
	"github.com/techforge-labs/fulfillment/internal/domain/provider"
)

type MockLicenseRepository struct {
	mock.Mock
}

func (m *MockLicenseRepository) Issue(ctx context.Context, license *entity.License) error {
	args := m.Called(ctx, license)
	return args.Error(0)
}

func (m *MockLicenseRepository) GetByKey(ctx context.Context, key string) (*entity.License, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.License), args.Error(1)
}

func (m *MockLicenseRepository) GetBySourceEvent(ctx context.Context, eventID string) (*entity.License, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.License), args.Error(1)
}

func (m *MockLicenseRepository) Revoke(ctx context.Context, key string) (*entity.License, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.License), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

type MockAffiliateRepository struct {
	mock.Mock
}

func (m *MockAffiliateRepository) Record(ctx context.Context, event *entity.AffiliateEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAffiliateRepository) ListByCode(ctx context.Context, code string) ([]*entity.AffiliateEvent, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AffiliateEvent), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendLicenseIssued(ctx context.Context, n *provider.LicenseNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
