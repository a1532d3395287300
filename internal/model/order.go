package model

import "time"

// Order is the durable record of a completed, paid purchase.  It owns a
// fixed set of tickets; each ticket points back at exactly one order
// once sold.  The amount is computed from the ticket quantity and the
// concert's price at the time of the order and never recomputed.
//
// Fields:
//  ID                 – primary key identifier.
//  ConcertID          – concert the order belongs to.
//  ConfirmationNumber – opaque identifier handed to the purchaser.
//  Email              – purchaser email address.
//  AmountCents        – total charged, in minor currency units.
//  TicketIDs          – tickets bound to this order.
//  CreatedAt          – when the order was placed.
type Order struct {
	ID                 uint64    // orders.id
	ConcertID          uint64    // orders.concert_id
	ConfirmationNumber string    // orders.confirmation_number
	Email              string    // orders.email
	AmountCents        uint32    // orders.amount_cents
	TicketIDs          []uint64  // tickets.id where tickets.order_id = orders.id
	CreatedAt          time.Time // orders.created_at
}

// TicketQuantity returns the number of tickets bound to the order.
func (o *Order) TicketQuantity() int {
	return len(o.TicketIDs)
}
