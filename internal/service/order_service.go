// Package service contains the purchase orchestration and background
// maintenance for the ticket sales flow.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbirmhrjn/ticketbeast-1/internal/billing"
	"github.com/kbirmhrjn/ticketbeast-1/internal/model"
)

// ErrInvalidQuantity is returned when a purchase asks for fewer than
// one ticket.  The HTTP layer validates quantity first; this is the
// defensive backstop.
var ErrInvalidQuantity = errors.New("ticket quantity must be at least one")

// ConcertStore looks up concerts visible to purchasers.
type ConcertStore interface {
	// GetPublished returns the concert only if it is published;
	// unpublished or missing concerts yield ErrConcertNotFound.
	GetPublished(ctx context.Context, id uint64) (*model.Concert, error)
}

// TicketInventory is the atomic claim/release surface of the ticket
// pool.  Reserve is all-or-nothing; Release is idempotent and keyed on
// the reservation so it never touches reclaimed tickets.
type TicketInventory interface {
	Reserve(ctx context.Context, concertID uint64, quantity int) (*model.Reservation, error)
	Release(ctx context.Context, res *model.Reservation) error
}

// OrderStore persists orders.  CreateFromReservation atomically commits
// the held tickets and creates the order row, failing with
// ErrReservationExpired when the hold lapsed.
type OrderStore interface {
	CreateFromReservation(ctx context.Context, concert *model.Concert, email string, res *model.Reservation) (*model.Order, error)
	Cancel(ctx context.Context, confirmationNumber string) error
}

// OrderService coordinates a purchase attempt end to end:
// reserve tickets, charge the card, then convert the reservation into a
// durable order — releasing the held tickets on any failure after the
// reservation, so a failed purchase leaves ticket state exactly as if
// it had never been attempted.  The charge runs strictly between the
// reserve and commit transactions; the gateway is never called while
// inventory locks are held.
type OrderService struct {
	concerts  ConcertStore
	inventory TicketInventory
	orders    OrderStore
	gateway   billing.PaymentGateway
}

// NewOrderService wires the purchase flow's collaborators.
func NewOrderService(concerts ConcertStore, inventory TicketInventory, orders OrderStore, gateway billing.PaymentGateway) *OrderService {
	return &OrderService{
		concerts:  concerts,
		inventory: inventory,
		orders:    orders,
		gateway:   gateway,
	}
}

// PurchaseInput carries one purchase attempt.
type PurchaseInput struct {
	ConcertID    uint64
	Email        string
	Quantity     int
	PaymentToken string
}

// Purchase executes a purchase attempt.  Failure modes:
//
//   - repository.ErrConcertNotFound — unknown or unpublished concert;
//     nothing was attempted.
//   - ErrInvalidQuantity — quantity < 1; nothing was attempted.
//   - repository.ErrNotEnoughTicketsRemain — the pool could not satisfy
//     the full quantity; no tickets are held and no charge was made.
//   - billing.ErrPaymentFailed — the charge did not go through; the
//     reservation has been released.
//   - repository.ErrReservationExpired — the hold lapsed before commit;
//     no order exists and any tickets still carrying the hold are
//     released.  The caller must restart the purchase.
func (s *OrderService) Purchase(ctx context.Context, in PurchaseInput) (*model.Order, error) {
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	concert, err := s.concerts.GetPublished(ctx, in.ConcertID)
	if err != nil {
		return nil, err
	}

	res, err := s.inventory.Reserve(ctx, concert.ID, in.Quantity)
	if err != nil {
		return nil, err
	}

	amount := res.TotalCost(concert.TicketPriceCents)
	if err := s.gateway.Charge(ctx, amount, in.PaymentToken); err != nil {
		// Any non-success from the gateway triggers the rollback path.
		if relErr := s.inventory.Release(ctx, res); relErr != nil {
			return nil, errors.Join(err, fmt.Errorf("release after failed charge: %w", relErr))
		}
		if !errors.Is(err, billing.ErrPaymentFailed) {
			err = fmt.Errorf("%w: %v", billing.ErrPaymentFailed, err)
		}
		return nil, err
	}

	order, err := s.orders.CreateFromReservation(ctx, concert, in.Email, res)
	if err != nil {
		_ = s.inventory.Release(ctx, res)
		return nil, err
	}
	return order, nil
}

// CancelOrder releases the order's tickets back to the pool and deletes
// the order as one unit.  Returns repository.ErrOrderNotFound when the
// confirmation number matches nothing.
func (s *OrderService) CancelOrder(ctx context.Context, confirmationNumber string) error {
	return s.orders.Cancel(ctx, confirmationNumber)
}
