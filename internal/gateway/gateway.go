package gateway

import "context"

// PaymentGateway is the engine's view of the external payment provider. It
// reports success or failure independently of local state; callers decide
// whether a failure blocks the operation.
type PaymentGateway interface {
	// CreateIntent opens a charge for the given amount and returns an
	// opaque intent reference.
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error)
	// CreateHold places a pre-authorization (reserved but not charged)
	// and returns an opaque hold reference.
	CreateHold(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error)
	// CaptureHold charges a previously placed hold.
	CaptureHold(ctx context.Context, holdRef string) error
	// ReleaseHold cancels a previously placed hold without charging.
	ReleaseHold(ctx context.Context, holdRef string) error
	// Refund returns amountCents of the given charge to the customer.
	Refund(ctx context.Context, chargeRef string, amountCents int64) error
}
