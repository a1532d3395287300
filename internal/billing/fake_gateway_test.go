package billing

import (
	"context"
	"errors"
	"testing"
)

func TestFakeGatewayCharge(t *testing.T) {
	t.Parallel()

	t.Run("records charges with a valid token", func(t *testing.T) {
		gw := NewFakeGateway()

		if err := gw.Charge(context.Background(), 2500, gw.ValidTestToken()); err != nil {
			t.Fatalf("expected charge to succeed, got %v", err)
		}
		if err := gw.Charge(context.Background(), 1500, gw.ValidTestToken()); err != nil {
			t.Fatalf("expected charge to succeed, got %v", err)
		}

		if got := gw.TotalCharges(); got != 4000 {
			t.Fatalf("expected total charges 4000, got %d", got)
		}
		if got := gw.ChargeCount(); got != 2 {
			t.Fatalf("expected 2 charges, got %d", got)
		}
	})

	t.Run("fails with an invalid token and records nothing", func(t *testing.T) {
		gw := NewFakeGateway()

		err := gw.Charge(context.Background(), 2500, "not-a-real-token")
		if !errors.Is(err, ErrPaymentFailed) {
			t.Fatalf("expected ErrPaymentFailed, got %v", err)
		}
		if got := gw.ChargeCount(); got != 0 {
			t.Fatalf("expected no recorded charges, got %d", got)
		}
		if got := gw.TotalCharges(); got != 0 {
			t.Fatalf("expected zero total, got %d", got)
		}
	})

	t.Run("runs the before-charge hook once", func(t *testing.T) {
		gw := NewFakeGateway()

		calls := 0
		gw.BeforeFirstCharge(func() { calls++ })

		_ = gw.Charge(context.Background(), 100, gw.ValidTestToken())
		_ = gw.Charge(context.Background(), 100, gw.ValidTestToken())

		if calls != 1 {
			t.Fatalf("expected hook to run once, ran %d times", calls)
		}
	})
}
