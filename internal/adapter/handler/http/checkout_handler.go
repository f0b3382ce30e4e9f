package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/techforge-labs/fulfillment/internal/domain/entity"
	"github.com/techforge-labs/fulfillment/internal/domain/provider"
	"github.com/techforge-labs/fulfillment/internal/domain/repository"
	"go.uber.org/zap"
)

// CheckoutHandler creates hosted checkout sessions for purchasable plans.
type CheckoutHandler struct {
	logger      *zap.Logger
	gateway     provider.PaymentGateway
	profileRepo repository.ProfileRepository
	priceIDs    map[string]string
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(logger *zap.Logger, gateway provider.PaymentGateway, profileRepo repository.ProfileRepository, priceIDs map[string]string) *CheckoutHandler {
	return &CheckoutHandler{
		logger:      logger,
		gateway:     gateway,
		profileRepo: profileRepo,
		priceIDs:    priceIDs,
	}
}

type CreateCheckoutRequest struct {
	Plan   string `json:"plan" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Ref    string `json:"ref"`
}

type CreateCheckoutResponse struct {
	URL string `json:"url"`
}

// CreateCheckout handles POST /api/v1/checkout
func (h *CheckoutHandler) CreateCheckout(c echo.Context) error {
	var req CreateCheckoutRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing user"})
	}

	plan, err := entity.ParsePlan(req.Plan)
	if err != nil || !plan.IsPurchasable() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid plan"})
	}

	priceID, ok := h.priceIDs[plan.String()]
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid plan"})
	}

	// Ensure the profile exists before the customer leaves for the
	// gateway; the plan itself is only activated by the webhook.
	profile := &entity.Profile{
		UserID:    req.UserID,
		Email:     req.Email,
		UpdatedAt: time.Now(),
	}
	if err := h.profileRepo.Upsert(c.Request().Context(), profile); err != nil {
		h.logger.Error("Failed to upsert profile for checkout",
			zap.String("email", req.Email),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	session, err := h.gateway.CreateCheckoutSession(c.Request().Context(), &provider.CheckoutSessionRequest{
		PriceID:       priceID,
		Plan:          plan,
		UserID:        req.UserID,
		Email:         req.Email,
		AffiliateCode: req.Ref,
	})
	if err != nil {
		h.logger.Error("Error creating checkout session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	h.logger.Info("Checkout session created",
		zap.String("session_id", session.ID),
		zap.String("plan", plan.String()),
		zap.String("email", req.Email))

	return c.JSON(http.StatusOK, CreateCheckoutResponse{URL: session.URL})
}
