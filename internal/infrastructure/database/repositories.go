package database

import (
	"github.com/techforge-labs/fulfillment/internal/adapter/repository"
	domainRepo "github.com/techforge-labs/fulfillment/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	License   domainRepo.LicenseRepository
	Profile   domainRepo.ProfileRepository
	Affiliate domainRepo.AffiliateRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		License:   repository.NewLicenseRepository(db, logger),
		Profile:   repository.NewProfileRepository(db, logger),
		Affiliate: repository.NewAffiliateRepository(db, logger),
	}
}
