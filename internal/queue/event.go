// Package queue defines message payloads exchanged over the message
// broker, the publisher used after a successful purchase, and the
// background consumer that journals placed orders.
package queue

// OrderPlacedEvent is published when a purchase completes.  It carries
// enough information for downstream consumers to log, notify, or feed
// analytics without querying the primary database.
type OrderPlacedEvent struct {
	OrderID            uint64 `json:"order_id"`
	ConfirmationNumber string `json:"confirmation_number"`
	ConcertID          uint64 `json:"concert_id"`
	Email              string `json:"email"`
	TicketQuantity     int    `json:"ticket_quantity"`
	AmountCents        uint32 `json:"amount_cents"`
	PlacedAt           string `json:"placed_at"`
}
