// This file defines handlers for the public concert listing API.  These
// routes let unauthenticated users browse published concerts.  Draft
// concerts are invisible: requesting one 404s exactly like a concert
// that does not exist.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kbirmhrjn/ticketbeast-1/internal/model"
	"github.com/kbirmhrjn/ticketbeast-1/internal/repository"
)

// ConcertHandler aggregates repositories needed for public browsing.
type ConcertHandler struct {
	Concerts *repository.ConcertRepo
	Tickets  *repository.TicketRepo
}

func NewConcertHandler(concerts *repository.ConcertRepo, tickets *repository.TicketRepo) *ConcertHandler {
	return &ConcertHandler{Concerts: concerts, Tickets: tickets}
}

// PublicConcert is a published concert as exposed on listing pages.
type PublicConcert struct {
	ID                    uint64 `json:"id"`
	Title                 string `json:"title"`
	Subtitle              string `json:"subtitle"`
	FormattedDate         string `json:"formatted_date"`
	FormattedStartTime    string `json:"formatted_start_time"`
	TicketPriceInDollars  string `json:"ticket_price_in_dollars"`
	Venue                 string `json:"venue"`
	VenueAddress          string `json:"venue_address"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	Zip                   string `json:"zip"`
	AdditionalInformation string `json:"additional_information"`
	TicketsRemaining      *int   `json:"tickets_remaining,omitempty"`
}

func publicConcert(c *model.Concert) PublicConcert {
	return PublicConcert{
		ID:                    c.ID,
		Title:                 c.Title,
		Subtitle:              c.Subtitle,
		FormattedDate:         c.FormattedDate(),
		FormattedStartTime:    c.FormattedStartTime(),
		TicketPriceInDollars:  c.TicketPriceInDollars(),
		Venue:                 c.Venue,
		VenueAddress:          c.VenueAddress,
		City:                  c.City,
		State:                 c.State,
		Zip:                   c.Zip,
		AdditionalInformation: c.AdditionalInformation,
	}
}

// ListConcerts handles GET /v1/concerts.  It returns every published
// concert ordered by date in an "items" array.
func (h *ConcertHandler) ListConcerts(c echo.Context) error {
	ctx := c.Request().Context()
	concerts, err := h.Concerts.ListPublished(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicConcert, 0, len(concerts))
	for i := range concerts {
		out = append(out, publicConcert(&concerts[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetConcert handles GET /v1/concerts/:id.  It returns a published
// concert with its advisory remaining-ticket count.  The count is a
// snapshot for display only; the purchase path re-validates
// availability atomically.
func (h *ConcertHandler) GetConcert(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid concert id"})
	}
	ctx := c.Request().Context()
	concert, err := h.Concerts.GetPublished(ctx, id)
	if err != nil {
		if err == repository.ErrConcertNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	remaining, err := h.Tickets.TicketsRemaining(ctx, concert.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := publicConcert(concert)
	out.TicketsRemaining = &remaining
	return c.JSON(http.StatusOK, out)
}
