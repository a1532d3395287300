package service

import (
	"context"
	"log"
	"time"
)

// ExpiredReleaser reclaims lapsed reservations, returning how many
// tickets went back to the pool.
type ExpiredReleaser interface {
	ReleaseExpired(ctx context.Context) (int64, error)
}

// StartReservationSweeper releases expired reservations on an interval
// until the context is cancelled.  The claim path already treats lapsed
// holds as available, so the sweeper only keeps the tickets table tidy
// and the remaining-count honest between claims.  Errors are logged and
// the loop keeps running.
func StartReservationSweeper(ctx context.Context, inv ExpiredReleaser, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := inv.ReleaseExpired(ctx)
			if err != nil {
				log.Printf("sweeper: release expired reservations: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("sweeper: returned %d ticket(s) from expired reservations", n)
			}
		}
	}
}
