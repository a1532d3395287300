package model

import "time"

// TicketStatus enumerates the mutually exclusive states of a ticket.
type TicketStatus string

const (
	TicketAvailable TicketStatus = "AVAILABLE" // no order, no active hold
	TicketReserved  TicketStatus = "RESERVED"  // held by an unexpired reservation
	TicketOrdered   TicketStatus = "ORDERED"   // bound to an order
)

// Ticket is one sellable unit of a concert's inventory.  A ticket belongs
// to exactly one concert for its whole life.  Its state is derived from
// the order and reservation columns rather than stored explicitly: a set
// order_id means ORDERED, an unexpired reservation token means RESERVED,
// anything else is AVAILABLE.  Price is never stored per ticket; it is
// read from the owning concert at reservation time.
//
// Fields:
//  ID                   – primary key identifier.
//  ConcertID            – owning concert (immutable).
//  OrderID              – order the ticket is bound to (nil while unsold).
//  ReservationToken     – opaque token of the active hold, if any.
//  ReservedAt           – when the active hold was taken.
//  ReservationExpiresAt – deadline after which the hold lapses.
//  CreatedAt            – when the ticket was added to the pool.
type Ticket struct {
	ID                   uint64     // tickets.id
	ConcertID            uint64     // tickets.concert_id
	OrderID              *uint64    // tickets.order_id (nullable)
	ReservationToken     *string    // tickets.reservation_token (nullable)
	ReservedAt           *time.Time // tickets.reserved_at (nullable)
	ReservationExpiresAt *time.Time // tickets.reservation_expires_at (nullable)
	CreatedAt            time.Time  // tickets.created_at
}

// Status derives the ticket state at the given instant.  A hold whose
// deadline has passed no longer counts as a reservation.
func (t *Ticket) Status(now time.Time) TicketStatus {
	if t.OrderID != nil {
		return TicketOrdered
	}
	if t.ReservationToken != nil && t.ReservationExpiresAt != nil && t.ReservationExpiresAt.After(now) {
		return TicketReserved
	}
	return TicketAvailable
}
