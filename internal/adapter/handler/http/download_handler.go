package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/techforge-labs/fulfillment/internal/domain/provider"
	"github.com/techforge-labs/fulfillment/internal/usecase"
	"go.uber.org/zap"
)

// DownloadHandler exchanges a valid license for a watermarked bundle.
type DownloadHandler struct {
	logger      *zap.Logger
	entitlement *usecase.EntitlementService
	store       provider.ObjectStore
	packager    *usecase.Packager
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(logger *zap.Logger, entitlement *usecase.EntitlementService, store provider.ObjectStore, packager *usecase.Packager) *DownloadHandler {
	return &DownloadHandler{
		logger:      logger,
		entitlement: entitlement,
		store:       store,
		packager:    packager,
	}
}

// Download handles GET /download?template=&license=
func (h *DownloadHandler) Download(c echo.Context) error {
	template := strings.ToLower(c.QueryParam("template"))
	license := strings.TrimSpace(c.QueryParam("license"))

	if license == "" {
		return c.String(http.StatusBadRequest, "Missing license")
	}

	decision, err := h.entitlement.CheckAccess(c.Request().Context(), license, template)
	if err != nil {
		h.logger.Error("Entitlement check failed", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal server error")
	}

	if !decision.Allowed {
		if decision.Reason == usecase.DenyUnknownAsset {
			return c.String(http.StatusBadRequest, decision.Message())
		}
		return c.String(http.StatusForbidden, decision.Message())
	}

	original, err := h.store.FetchObject(c.Request().Context(), decision.Asset.ObjectKey)
	if err != nil {
		h.logger.Error("Failed to fetch template archive",
			zap.String("template", template),
			zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal server error")
	}

	bundle, err := h.packager.Build(decision.Asset, decision.License, original, time.Now())
	if err != nil {
		h.logger.Error("Failed to build bundle",
			zap.String("template", template),
			zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal server error")
	}

	h.logger.Info("Bundle delivered",
		zap.String("template", template),
		zap.String("email", decision.License.Email),
		zap.Int("size", len(bundle)))

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, h.packager.BundleFilename(template)))

	return c.Blob(http.StatusOK, "application/zip", bundle)
}
