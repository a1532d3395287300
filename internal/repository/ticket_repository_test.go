package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kbirmhrjn/ticketbeast-1/internal/testutil"
)

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?,?,?"},
	}
	for _, tc := range cases {
		if got := placeholders(tc.n); got != tc.want {
			t.Fatalf("placeholders(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestRandomToken(t *testing.T) {
	t.Parallel()

	a, err := randomToken(32)
	if err != nil {
		t.Fatalf("expected token generation to succeed, got %v", err)
	}
	if len(a) != 64 {
		t.Fatalf("expected a 64-character token, got %d characters", len(a))
	}
	b, err := randomToken(32)
	if err != nil {
		t.Fatalf("expected token generation to succeed, got %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct tokens on consecutive calls")
	}
}

func TestTicketRepo(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTicketRepo(db, 5*time.Minute)

	t.Run("Reserve claims exactly the requested tickets", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		concertID := testutil.InsertConcert(t, ctx, db, "The Red Chord", 3250)

		if err := repo.AddTickets(ctx, concertID, 10); err != nil {
			t.Fatalf("add tickets: %v", err)
		}

		res, err := repo.Reserve(ctx, concertID, 3)
		if err != nil {
			t.Fatalf("expected reservation, got %v", err)
		}
		if len(res.TicketIDs) != 3 {
			t.Fatalf("expected 3 ticket ids, got %d", len(res.TicketIDs))
		}
		if len(res.Token) != 64 {
			t.Fatalf("expected a 64-character token, got %d characters", len(res.Token))
		}

		remaining, err := repo.TicketsRemaining(ctx, concertID)
		if err != nil {
			t.Fatalf("tickets remaining: %v", err)
		}
		if remaining != 7 {
			t.Fatalf("expected 7 remaining, got %d", remaining)
		}
	})

	t.Run("Reserve is all or nothing when the pool is short", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		concertID := testutil.InsertConcert(t, ctx, db, "The Red Chord", 3250)

		if err := repo.AddTickets(ctx, concertID, 2); err != nil {
			t.Fatalf("add tickets: %v", err)
		}

		if _, err := repo.Reserve(ctx, concertID, 3); !errors.Is(err, ErrNotEnoughTicketsRemain) {
			t.Fatalf("expected ErrNotEnoughTicketsRemain, got %v", err)
		}
		remaining, err := repo.TicketsRemaining(ctx, concertID)
		if err != nil {
			t.Fatalf("tickets remaining: %v", err)
		}
		if remaining != 2 {
			t.Fatalf("expected the failed claim to hold nothing, got %d remaining", remaining)
		}
	})

	t.Run("concurrent claims never share a ticket", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		concertID := testutil.InsertConcert(t, ctx, db, "The Red Chord", 3250)

		if err := repo.AddTickets(ctx, concertID, 3); err != nil {
			t.Fatalf("add tickets: %v", err)
		}

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = repo.Reserve(ctx, concertID, 2)
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, err := range results {
			if err == nil {
				successes++
			} else if !errors.Is(err, ErrNotEnoughTicketsRemain) {
				t.Fatalf("unexpected reserve error: %v", err)
			}
		}
		if successes != 1 {
			t.Fatalf("expected exactly one claim to win, got %d", successes)
		}
		remaining, err := repo.TicketsRemaining(ctx, concertID)
		if err != nil {
			t.Fatalf("tickets remaining: %v", err)
		}
		if remaining != 1 {
			t.Fatalf("expected 1 ticket left, got %d", remaining)
		}
	})

	t.Run("commit binds held tickets to the order", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		concertID := testutil.InsertConcert(t, ctx, db, "The Red Chord", 3250)

		if err := repo.AddTickets(ctx, concertID, 5); err != nil {
			t.Fatalf("add tickets: %v", err)
		}
		res, err := repo.Reserve(ctx, concertID, 2)
		if err != nil {
			t.Fatalf("reserve: %v", err)
		}
		orderID := testutil.InsertOrder(t, ctx, db, concertID, "conf-commit", "jane@example.com", 6500)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("begin tx: %v", err)
		}
		if err := repo.CommitTicketsTx(ctx, tx, res, orderID); err != nil {
			_ = tx.Rollback()
			t.Fatalf("commit tickets: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("commit tx: %v", err)
		}

		ids, err := repo.IDsByOrder(ctx, orderID)
		if err != nil {
			t.Fatalf("ids by order: %v", err)
		}
		if len(ids) != 2 {
			t.Fatalf("expected 2 tickets bound to the order, got %d", len(ids))
		}
		remaining, err := repo.TicketsRemaining(ctx, concertID)
		if err != nil {
			t.Fatalf("tickets remaining: %v", err)
		}
		if remaining != 3 {
			t.Fatalf("expected 3 remaining after commit, got %d", remaining)
		}
	})

	t.Run("commit fails after the hold lapsed", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		concertID := testutil.InsertConcert(t, ctx, db, "The Red Chord", 3250)

		// A repo whose holds are born expired stands in for time passing
		// between reservation and commit.
		lapsed := NewTicketRepo(db, -time.Hour)
		if err := lapsed.AddTickets(ctx, concertID, 4); err != nil {
			t.Fatalf("add tickets: %v", err)
		}
		res, err := lapsed.Reserve(ctx, concertID, 2)
		if err != nil {
			t.Fatalf("reserve: %v", err)
		}
		orderID := testutil.InsertOrder(t, ctx, db, concertID, "conf-lapsed", "jane@example.com", 6500)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("begin tx: %v", err)
		}
		err = lapsed.CommitTicketsTx(ctx, tx, res, orderID)
		_ = tx.Rollback()
		if !errors.Is(err, ErrReservationExpired) {
			t.Fatalf("expected ErrReservationExpired, got %v", err)
		}

		ids, err := lapsed.IDsByOrder(ctx, orderID)
		if err != nil {
			t.Fatalf("ids by order: %v", err)
		}
		if len(ids) != 0 {
			t.Fatalf("expected no tickets bound after a lapsed commit, got %d", len(ids))
		}
		remaining, err := lapsed.TicketsRemaining(ctx, concertID)
		if err != nil {
			t.Fatalf("tickets remaining: %v", err)
		}
		if remaining != 4 {
			t.Fatalf("expected all 4 tickets claimable again, got %d", remaining)
		}
	})

	t.Run("release is keyed on the token and idempotent", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		concertID := testutil.InsertConcert(t, ctx, db, "The Red Chord", 3250)

		if err := repo.AddTickets(ctx, concertID, 3); err != nil {
			t.Fatalf("add tickets: %v", err)
		}
		res, err := repo.Reserve(ctx, concertID, 3)
		if err != nil {
			t.Fatalf("reserve: %v", err)
		}

		if err := repo.Release(ctx, res); err != nil {
			t.Fatalf("release: %v", err)
		}
		remaining, err := repo.TicketsRemaining(ctx, concertID)
		if err != nil {
			t.Fatalf("tickets remaining: %v", err)
		}
		if remaining != 3 {
			t.Fatalf("expected all tickets back, got %d", remaining)
		}

		// The same tickets now belong to a fresh hold with a new token; a
		// second release of the stale reservation must not touch them.
		if _, err := repo.Reserve(ctx, concertID, 3); err != nil {
			t.Fatalf("re-reserve: %v", err)
		}
		if err := repo.Release(ctx, res); err != nil {
			t.Fatalf("stale release: %v", err)
		}
		remaining, err = repo.TicketsRemaining(ctx, concertID)
		if err != nil {
			t.Fatalf("tickets remaining: %v", err)
		}
		if remaining != 0 {
			t.Fatalf("expected stale release to free nothing, got %d remaining", remaining)
		}
	})

	t.Run("ReleaseExpired reclaims only lapsed holds", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		concertID := testutil.InsertConcert(t, ctx, db, "The Red Chord", 3250)

		lapsed := NewTicketRepo(db, -time.Hour)
		if err := repo.AddTickets(ctx, concertID, 4); err != nil {
			t.Fatalf("add tickets: %v", err)
		}
		// The live hold is taken first; the claim path treats lapsed
		// holds as available, so reserving afterwards would re-claim
		// the expired tickets instead of leaving them for the sweep.
		if _, err := repo.Reserve(ctx, concertID, 1); err != nil {
			t.Fatalf("live reserve: %v", err)
		}
		if _, err := lapsed.Reserve(ctx, concertID, 2); err != nil {
			t.Fatalf("lapsed reserve: %v", err)
		}

		n, err := repo.ReleaseExpired(ctx)
		if err != nil {
			t.Fatalf("release expired: %v", err)
		}
		if n != 2 {
			t.Fatalf("expected 2 tickets reclaimed, got %d", n)
		}
		remaining, err := repo.TicketsRemaining(ctx, concertID)
		if err != nil {
			t.Fatalf("tickets remaining: %v", err)
		}
		if remaining != 3 {
			t.Fatalf("expected 3 available with the live hold intact, got %d", remaining)
		}
	})
}
