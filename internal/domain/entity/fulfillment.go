package entity

import "github.com/shopspring/decimal"

// EventTypeCheckoutCompleted is the only event type that drives
// fulfillment. Everything else is acknowledged and ignored.
const EventTypeCheckoutCompleted = "checkout.session.completed"

// FulfillmentEvent is the authenticated payment-completion payload.
// ID doubles as the idempotency key for the whole orchestration.
type FulfillmentEvent struct {
	ID            string
	Type          string
	Email         string
	UserID        string
	Plan          Plan
	AffiliateCode string
	// AmountTotal is the gross amount in the smallest currency unit.
	AmountTotal int64
}

// IsCompletion reports whether the event should be fulfilled.
func (e *FulfillmentEvent) IsCompletion() bool {
	return e.Type == EventTypeCheckoutCompleted
}

// HasValidPlan reports whether the event names a known plan. A session
// created outside the checkout flow can complete without plan metadata;
// such an event must never turn into a license.
func (e *FulfillmentEvent) HasValidPlan() bool {
	return e.Plan.Rank() >= 0
}

// GrossAmount converts the minor-unit total into a decimal amount.
func (e *FulfillmentEvent) GrossAmount() decimal.Decimal {
	return decimal.New(e.AmountTotal, -2)
}

// FulfillmentResult describes the terminal state of one processed event.
type FulfillmentResult struct {
	License      *License
	Deduplicated bool
}
