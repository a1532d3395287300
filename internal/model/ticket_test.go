package model

import (
	"testing"
	"time"
)

func TestTicketStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := "abc123"
	orderID := uint64(7)
	live := now.Add(5 * time.Minute)
	lapsed := now.Add(-time.Minute)

	cases := []struct {
		name   string
		ticket Ticket
		want   TicketStatus
	}{
		{"fresh ticket", Ticket{}, TicketAvailable},
		{"active hold", Ticket{ReservationToken: &token, ReservationExpiresAt: &live}, TicketReserved},
		{"lapsed hold", Ticket{ReservationToken: &token, ReservationExpiresAt: &lapsed}, TicketAvailable},
		{"sold", Ticket{OrderID: &orderID}, TicketOrdered},
		{"sold wins over hold", Ticket{OrderID: &orderID, ReservationToken: &token, ReservationExpiresAt: &live}, TicketOrdered},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ticket.Status(now); got != tc.want {
				t.Fatalf("expected status %s, got %s", tc.want, got)
			}
		})
	}
}
