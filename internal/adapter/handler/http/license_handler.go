package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	domainErrors "github.com/techforge-labs/fulfillment/internal/domain/errors"
	"github.com/techforge-labs/fulfillment/internal/domain/repository"
	"go.uber.org/zap"
)

// LicenseHandler serves the admin license and affiliate routes.
type LicenseHandler struct {
	logger        *zap.Logger
	licenseRepo   repository.LicenseRepository
	affiliateRepo repository.AffiliateRepository
}

// NewLicenseHandler creates a new license admin handler
func NewLicenseHandler(logger *zap.Logger, licenseRepo repository.LicenseRepository, affiliateRepo repository.AffiliateRepository) *LicenseHandler {
	return &LicenseHandler{
		logger:        logger,
		licenseRepo:   licenseRepo,
		affiliateRepo: affiliateRepo,
	}
}

// GetLicense handles GET /api/v1/licenses/:key
func (h *LicenseHandler) GetLicense(c echo.Context) error {
	key := c.Param("key")

	license, err := h.licenseRepo.GetByKey(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, domainErrors.ErrLicenseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "License not found"})
		}
		h.logger.Error("Failed to get license", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, license)
}

// RevokeLicense handles POST /api/v1/licenses/:key/revoke
func (h *LicenseHandler) RevokeLicense(c echo.Context) error {
	key := c.Param("key")

	license, err := h.licenseRepo.Revoke(c.Request().Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrLicenseNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "License not found"})
		case errors.Is(err, domainErrors.ErrLicenseRevoked):
			return c.JSON(http.StatusConflict, echo.Map{"error": "License already revoked"})
		default:
			h.logger.Error("Failed to revoke license", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
		}
	}

	return c.JSON(http.StatusOK, license)
}

// GetAffiliateEvents handles GET /api/v1/affiliates/:code/events
func (h *LicenseHandler) GetAffiliateEvents(c echo.Context) error {
	code := c.Param("code")

	events, err := h.affiliateRepo.ListByCode(c.Request().Context(), code)
	if err != nil {
		h.logger.Error("Failed to list affiliate events",
			zap.String("affiliate_code", code),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	total := decimal.Zero
	for _, event := range events {
		total = total.Add(event.Commission)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"affiliate_code":   code,
		"events":           events,
		"event_count":      len(events),
		"total_commission": total,
	})
}
