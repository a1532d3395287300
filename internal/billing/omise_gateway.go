package billing

import (
	"context"
	"fmt"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// OmiseGateway charges cards through the Omise API.  Amounts are passed
// through in minor currency units, which is also what Omise expects.
type OmiseGateway struct {
	client   *omise.Client
	currency string
}

// NewOmiseGateway builds a gateway from the public/secret key pair.
func NewOmiseGateway(publicKey, secretKey, currency string) (*OmiseGateway, error) {
	c, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, err
	}
	c.SetDebug(false)
	return &OmiseGateway{client: c, currency: currency}, nil
}

// Charge creates a card charge for the token.  Any transport error or a
// charge that did not end up paid is reported as ErrPaymentFailed; the
// purchase flow only needs to know the charge did not go through.
func (g *OmiseGateway) Charge(ctx context.Context, amountCents uint32, token string) error {
	ch := &omise.Charge{}
	req := &operations.CreateCharge{
		Amount:   int64(amountCents),
		Currency: g.currency,
		Card:     token,
	}
	if err := g.client.Do(ch, req); err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if !ch.Paid {
		msg := "charge declined"
		if ch.FailureMessage != nil && *ch.FailureMessage != "" {
			msg = *ch.FailureMessage
		}
		return fmt.Errorf("%w: %s", ErrPaymentFailed, msg)
	}
	return nil
}
