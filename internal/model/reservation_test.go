package model

import (
	"testing"
	"time"
)

func TestReservationTotalCost(t *testing.T) {
	t.Parallel()

	res := &Reservation{TicketIDs: []uint64{1, 2, 3}}
	if got := res.TotalCost(3250); got != 9750 {
		t.Fatalf("expected total cost 9750, got %d", got)
	}
	if got := res.Quantity(); got != 3 {
		t.Fatalf("expected quantity 3, got %d", got)
	}
}

func TestReservationExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	res := &Reservation{ExpiresAt: now.Add(5 * time.Minute)}

	if res.Expired(now) {
		t.Fatalf("expected reservation to still be live before the deadline")
	}
	if !res.Expired(now.Add(5 * time.Minute)) {
		t.Fatalf("expected reservation to be expired exactly at the deadline")
	}
	if !res.Expired(now.Add(10 * time.Minute)) {
		t.Fatalf("expected reservation to be expired after the deadline")
	}
}
