package model

import (
	"testing"
	"time"
)

func TestConcertFormatting(t *testing.T) {
	t.Parallel()

	concert := &Concert{
		Title:            "The Red Chord",
		Date:             time.Date(2016, 12, 1, 20, 0, 0, 0, time.UTC),
		TicketPriceCents: 6750,
	}

	t.Run("formatted date", func(t *testing.T) {
		if got := concert.FormattedDate(); got != "December 1, 2016" {
			t.Fatalf("expected %q, got %q", "December 1, 2016", got)
		}
	})

	t.Run("formatted start time", func(t *testing.T) {
		c := &Concert{Date: time.Date(2016, 12, 1, 17, 0, 0, 0, time.UTC)}
		if got := c.FormattedStartTime(); got != "5:00pm" {
			t.Fatalf("expected %q, got %q", "5:00pm", got)
		}
	})

	t.Run("ticket price in dollars", func(t *testing.T) {
		if got := concert.TicketPriceInDollars(); got != "67.50" {
			t.Fatalf("expected %q, got %q", "67.50", got)
		}
	})

	t.Run("morning start time", func(t *testing.T) {
		c := &Concert{Date: time.Date(2016, 12, 1, 9, 30, 0, 0, time.UTC)}
		if got := c.FormattedStartTime(); got != "9:30am" {
			t.Fatalf("expected %q, got %q", "9:30am", got)
		}
	})
}

func TestConcertIsPublished(t *testing.T) {
	t.Parallel()

	draft := &Concert{Title: "Draft"}
	if draft.IsPublished() {
		t.Fatalf("expected draft concert to be unpublished")
	}

	at := time.Now()
	published := &Concert{Title: "Live", PublishedAt: &at}
	if !published.IsPublished() {
		t.Fatalf("expected concert with published_at to be published")
	}
}
