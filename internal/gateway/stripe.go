package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway implements PaymentGateway on Stripe PaymentIntents. Deposit
// holds use manual capture, captured or cancelled at checkout.
type StripeGateway struct {
	client *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{client: sc}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ID, nil
}

func (g *StripeGateway) CreateHold(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountCents),
		Currency:      stripe.String(currency),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to place hold: %w", err)
	}
	return pi.ID, nil
}

func (g *StripeGateway) CaptureHold(ctx context.Context, holdRef string) error {
	_, err := g.client.PaymentIntents.Capture(holdRef, &stripe.PaymentIntentCaptureParams{})
	if err != nil {
		return fmt.Errorf("failed to capture hold %s: %w", holdRef, err)
	}
	return nil
}

func (g *StripeGateway) ReleaseHold(ctx context.Context, holdRef string) error {
	_, err := g.client.PaymentIntents.Cancel(holdRef, &stripe.PaymentIntentCancelParams{})
	if err != nil {
		return fmt.Errorf("failed to release hold %s: %w", holdRef, err)
	}
	return nil
}

func (g *StripeGateway) Refund(ctx context.Context, chargeRef string, amountCents int64) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(chargeRef),
	}
	if amountCents > 0 {
		params.Amount = stripe.Int64(amountCents)
	}

	if _, err := g.client.Refunds.New(params); err != nil {
		return fmt.Errorf("failed to create refund for %s: %w", chargeRef, err)
	}
	return nil
}
