package stripe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
	"github.com/techforge-labs/fulfillment/internal/domain/entity"
	domainErrors "github.com/techforge-labs/fulfillment/internal/domain/errors"
	"github.com/techforge-labs/fulfillment/internal/domain/provider"
	"go.uber.org/zap"
)

// Provider implements the PaymentGateway and EventVerifier interfaces
// on top of Stripe hosted checkout and webhooks.
type Provider struct {
	webhookSecret string
	siteURL       string
	logger        *zap.Logger
}

// NewProvider creates a new Stripe provider. The API key itself is
// installed process-wide at startup.
func NewProvider(webhookSecret, siteURL string, logger *zap.Logger) *Provider {
	return &Provider{
		webhookSecret: webhookSecret,
		siteURL:       siteURL,
		logger:        logger,
	}
}

// CreateCheckoutSession creates a subscription checkout session. Plan,
// user id and affiliate code ride along as metadata so the fulfillment
// webhook can recover them without any extra lookup.
func (p *Provider) CreateCheckoutSession(ctx context.Context, req *provider.CheckoutSessionRequest) (*provider.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(req.Email),
		SuccessURL:    stripe.String(p.siteURL + "/?success=1"),
		CancelURL:     stripe.String(p.siteURL + "/?canceled=1"),
	}
	params.Context = ctx
	params.AddMetadata("plan", req.Plan.String())
	params.AddMetadata("user_id", req.UserID)
	params.AddMetadata("ref", req.AffiliateCode)

	s, err := checkoutsession.New(params)
	if err != nil {
		p.logger.Error("Error creating checkout session",
			zap.String("price_id", req.PriceID),
			zap.Error(err))
		return nil, domainErrors.NewUpstreamError("stripe", err)
	}

	return &provider.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// VerifyEvent authenticates the raw webhook payload against the shared
// secret and extracts the fulfillment fields from completed checkout
// sessions. The exact payload bytes are used for the signature check;
// any verification failure is terminal for the request.
func (p *Provider) VerifyEvent(payload []byte, signature string) (*entity.FulfillmentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		p.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		p.logger.Warn("Webhook signature verification failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidSignature, err)
	}

	ev := &entity.FulfillmentEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if !ev.IsCompletion() {
		// Unrecognized event types are acknowledged without validating
		// their structure.
		return ev, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		p.logger.Error("Error parsing checkout session", zap.Error(err))
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}

	// The session id, not the event id, is the idempotency key: Stripe
	// may emit distinct events for the same completed session.
	ev.ID = session.ID
	ev.AmountTotal = session.AmountTotal
	if session.CustomerDetails != nil {
		ev.Email = session.CustomerDetails.Email
	}
	// Indexing a nil metadata map yields empty strings, so a session
	// created outside the checkout flow takes the same path as one whose
	// metadata merely lacks a plan key.
	ev.UserID = session.Metadata["user_id"]
	ev.AffiliateCode = session.Metadata["ref"]
	ev.Plan = entity.Plan(session.Metadata["plan"])
	if !ev.HasValidPlan() {
		p.logger.Warn("Completed session carries no known plan",
			zap.String("session_id", session.ID),
			zap.String("plan", session.Metadata["plan"]))
	}

	return ev, nil
}
