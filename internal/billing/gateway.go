// Package billing defines the payment gateway contract consumed by the
// purchase flow, a fake gateway for tests and local development, and an
// Omise-backed implementation for production.  The purchase flow treats
// any non-nil charge error uniformly as a failure trigger for rollback;
// it never inspects gateway-specific detail.
package billing

import (
	"context"
	"errors"
)

// ErrPaymentFailed is returned when the gateway declines a charge.
// Gateway implementations wrap their own detail around this sentinel so
// callers can match it with errors.Is.
var ErrPaymentFailed = errors.New("payment failed")

// PaymentGateway charges a card token for an amount in minor currency
// units.  Implementations must be safe for concurrent use: purchases
// run in parallel request handlers.
type PaymentGateway interface {
	Charge(ctx context.Context, amountCents uint32, token string) error
}
