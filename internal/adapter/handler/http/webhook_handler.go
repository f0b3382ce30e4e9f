package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/techforge-labs/fulfillment/internal/domain/provider"
	"github.com/techforge-labs/fulfillment/internal/usecase"
	"go.uber.org/zap"
)

// WebhookHandler receives payment-completion events from the gateway.
type WebhookHandler struct {
	logger      *zap.Logger
	verifier    provider.EventVerifier
	fulfillment *usecase.FulfillmentService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(logger *zap.Logger, verifier provider.EventVerifier, fulfillment *usecase.FulfillmentService) *WebhookHandler {
	return &WebhookHandler{
		logger:      logger,
		verifier:    verifier,
		fulfillment: fulfillment,
	}
}

// HandleWebhook handles POST /webhook. The raw body bytes are handed to
// the verifier untouched; once verification passes the gateway always
// gets a success acknowledgment so it stops retrying.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading request body", zap.Error(err))
		return c.String(http.StatusBadRequest, "Error reading request body")
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	event, err := h.verifier.VerifyEvent(body, sig)
	if err != nil {
		return c.String(http.StatusBadRequest, "Webhook Error: "+err.Error())
	}

	h.logger.Info("Webhook event received",
		zap.String("type", event.Type),
		zap.String("id", event.ID))

	if !event.IsCompletion() {
		return c.String(http.StatusOK, "ignored")
	}

	if !event.HasValidPlan() {
		// Retrying cannot repair missing plan metadata, so acknowledge
		// and leave the session for manual follow-up.
		h.logger.Error("Completed session without a known plan, acknowledging",
			zap.String("event_id", event.ID))
		return c.String(http.StatusOK, "ignored")
	}

	result, err := h.fulfillment.ProcessEvent(c.Request().Context(), event)
	if err != nil {
		h.logger.Error("Fulfillment failed",
			zap.String("event_id", event.ID),
			zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal server error")
	}

	if result.Deduplicated {
		h.logger.Info("Duplicate fulfillment event acknowledged",
			zap.String("event_id", event.ID))
	}

	return c.String(http.StatusOK, "ok")
}
