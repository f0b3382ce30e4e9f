package provider

import (
	"context"

	"github.com/techforge-labs/fulfillment/internal/domain/entity"
)

// PaymentGateway creates hosted checkout sessions with the external
// payment provider. The core never sees the provider's client shape.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error)
}

// CheckoutSessionRequest carries everything the gateway needs to build
// a session. Plan, user and affiliate code travel as session metadata
// and round-trip back on the fulfillment event.
type CheckoutSessionRequest struct {
	PriceID       string
	Plan          entity.Plan
	UserID        string
	Email         string
	AffiliateCode string
}

// CheckoutSession is the created hosted-checkout session.
type CheckoutSession struct {
	ID  string
	URL string
}

// EventVerifier authenticates an inbound fulfillment event against the
// shared webhook secret. Verification must run over the exact raw
// payload bytes; re-serialization changes byte layout and breaks the
// signature. Any failure maps to errors.ErrInvalidSignature.
type EventVerifier interface {
	VerifyEvent(payload []byte, signature string) (*entity.FulfillmentEvent, error)
}

// ObjectStore fetches raw asset bytes from the template bucket.
type ObjectStore interface {
	FetchObject(ctx context.Context, key string) ([]byte, error)
}

// LicenseNotification is the payload for a license-delivery email.
type LicenseNotification struct {
	Email      string
	Plan       entity.Plan
	LicenseKey string
	// DownloadLinks maps template names to ready-to-use download URLs.
	DownloadLinks map[string]string
}

// Notifier delivers the license email. Delivery is best-effort and not
// part of the durability contract.
type Notifier interface {
	SendLicenseIssued(ctx context.Context, n *LicenseNotification) error
}
