package errors

import "errors"

var (
	// ErrInvalidSignature indicates that the webhook payload failed
	// signature verification against the shared secret
	ErrInvalidSignature = errors.New("webhook signature verification failed")

	// ErrDuplicateEvent indicates that a license was already issued for
	// this fulfillment event. Not a failure: the orchestration treats it
	// as an idempotent no-op.
	ErrDuplicateEvent = errors.New("fulfillment event already processed")

	// ErrLicenseNotFound indicates that no license exists for the given key
	ErrLicenseNotFound = errors.New("license not found")

	// ErrLicenseRevoked indicates that the license was already revoked
	ErrLicenseRevoked = errors.New("license already revoked")

	// ErrInvalidPlan indicates a plan outside the purchasable set
	ErrInvalidPlan = errors.New("invalid plan")
)
