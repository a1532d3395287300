package billing

import (
	"context"
	"fmt"
	"sync"
)

// fakeValidToken is the only token the fake gateway accepts.
const fakeValidToken = "fake-tok_valid"

// FakeGateway is an in-memory PaymentGateway that accepts a single
// well-known token and records every successful charge.  It backs the
// test suite and the default local payment driver, so purchases can be
// exercised end to end without an Omise account.
type FakeGateway struct {
	mu           sync.Mutex
	charges      []uint32
	beforeCharge func() // one-shot hook run before the next charge attempt
}

// NewFakeGateway returns an empty fake gateway.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

// ValidTestToken returns a token the fake gateway will accept.
func (g *FakeGateway) ValidTestToken() string { return fakeValidToken }

// Charge records the amount when the token is valid and fails with
// ErrPaymentFailed otherwise.  Nothing is recorded on failure.
func (g *FakeGateway) Charge(ctx context.Context, amountCents uint32, token string) error {
	g.mu.Lock()
	hook := g.beforeCharge
	g.beforeCharge = nil
	g.mu.Unlock()
	if hook != nil {
		hook()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if token != fakeValidToken {
		return fmt.Errorf("%w: invalid payment token", ErrPaymentFailed)
	}
	g.charges = append(g.charges, amountCents)
	return nil
}

// TotalCharges sums every amount charged so far.
func (g *FakeGateway) TotalCharges() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var total uint32
	for _, c := range g.charges {
		total += c
	}
	return total
}

// ChargeCount returns how many charges succeeded.
func (g *FakeGateway) ChargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.charges)
}

// BeforeFirstCharge registers a one-shot hook invoked ahead of the next
// charge attempt.  Tests use it to interleave concurrent activity
// between reservation and payment.
func (g *FakeGateway) BeforeFirstCharge(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.beforeCharge = fn
}
