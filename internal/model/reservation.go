package model

import "time"

// Reservation is a transient hold on a specific set of tickets pending
// payment.  It is not a durable record of its own: the hold lives on the
// ticket rows themselves as a shared token and deadline, and this value
// is handed to the purchase attempt that created it.  A reservation ends
// either by being committed into an order or by release (payment
// failure, explicit release, or expiry).
//
// Fields:
//  ConcertID – concert the held tickets belong to.
//  TicketIDs – exact set of ticket ids covered by the hold.
//  Token     – opaque token stamped on the held ticket rows.
//  ReservedAt – when the hold was taken.
//  ExpiresAt  – deadline after which the hold may be reclaimed.
type Reservation struct {
	ConcertID  uint64    // tickets.concert_id of every held ticket
	TicketIDs  []uint64  // tickets.id of the held set
	Token      string    // tickets.reservation_token shared by the set
	ReservedAt time.Time // tickets.reserved_at
	ExpiresAt  time.Time // tickets.reservation_expires_at
}

// Quantity returns the number of tickets held.
func (r *Reservation) Quantity() int {
	return len(r.TicketIDs)
}

// TotalCost computes the total price of the held tickets given the
// concert's per-ticket price.  Prices are derived at read time, so the
// caller supplies the price of the owning concert.
func (r *Reservation) TotalCost(ticketPriceCents uint32) uint32 {
	return uint32(len(r.TicketIDs)) * ticketPriceCents
}

// Expired reports whether the hold deadline has passed at the given instant.
func (r *Reservation) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
