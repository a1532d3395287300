package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeReleaser struct {
	mu      sync.Mutex
	calls   int
	err     error
	stopped chan struct{}
}

func (f *fakeReleaser) ReleaseExpired(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls == 3 && f.stopped != nil {
		close(f.stopped)
		f.stopped = nil
	}
	return 1, f.err
}

func (f *fakeReleaser) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestReservationSweeper(t *testing.T) {
	t.Parallel()

	t.Run("sweeps on each tick until cancelled", func(t *testing.T) {
		rel := &fakeReleaser{stopped: make(chan struct{})}
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			StartReservationSweeper(ctx, rel, time.Millisecond)
			close(done)
		}()

		select {
		case <-rel.stopped:
		case <-time.After(time.Second):
			t.Fatalf("sweeper never reached three sweeps")
		}

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("sweeper did not stop after cancellation")
		}
	})

	t.Run("keeps running after an error", func(t *testing.T) {
		rel := &fakeReleaser{err: errors.New("db unavailable"), stopped: make(chan struct{})}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go StartReservationSweeper(ctx, rel, time.Millisecond)

		select {
		case <-rel.stopped:
		case <-time.After(time.Second):
			t.Fatalf("sweeper stopped retrying after errors, swept %d times", rel.callCount())
		}
	})
}
