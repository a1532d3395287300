// This file defines the backstage handlers used by box-office staff to
// author concerts, stock inventory, publish, and manage orders.  All
// routes in this group sit behind JWT authentication plus the
// BOX_OFFICE role guard.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kbirmhrjn/ticketbeast-1/internal/model"
	"github.com/kbirmhrjn/ticketbeast-1/internal/repository"
	"github.com/kbirmhrjn/ticketbeast-1/internal/service"
)

// BackstageHandler groups the repositories behind the authoring API.
type BackstageHandler struct {
	Concerts *repository.ConcertRepo
	Tickets  *repository.TicketRepo
	Orders   *repository.OrderRepo
	Service  *service.OrderService
}

func NewBackstageHandler(concerts *repository.ConcertRepo, tickets *repository.TicketRepo, orders *repository.OrderRepo, svc *service.OrderService) *BackstageHandler {
	return &BackstageHandler{Concerts: concerts, Tickets: tickets, Orders: orders, Service: svc}
}

type createConcertReq struct {
	Title                 string `json:"title"`
	Subtitle              string `json:"subtitle"`
	Date                  string `json:"date"` // RFC3339
	TicketPriceCents      uint32 `json:"ticket_price_cents"`
	Venue                 string `json:"venue"`
	VenueAddress          string `json:"venue_address"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	Zip                   string `json:"zip"`
	AdditionalInformation string `json:"additional_information"`
}

// CreateConcert handles POST /v1/backstage/concerts.  Concerts are
// created as drafts; they become purchasable only after Publish.
func (h *BackstageHandler) CreateConcert(c echo.Context) error {
	var req createConcertReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "title is required", "field": "title"})
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "date must be RFC3339", "field": "date"})
	}
	if req.TicketPriceCents == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "ticket price is required", "field": "ticket_price_cents"})
	}

	concert := &model.Concert{
		Title:                 req.Title,
		Subtitle:              req.Subtitle,
		Date:                  date.UTC(),
		TicketPriceCents:      req.TicketPriceCents,
		Venue:                 req.Venue,
		VenueAddress:          req.VenueAddress,
		City:                  req.City,
		State:                 req.State,
		Zip:                   req.Zip,
		AdditionalInformation: req.AdditionalInformation,
	}
	if err := h.Concerts.Create(c.Request().Context(), concert); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create concert failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": concert.ID})
}

// AddTickets handles POST /v1/backstage/concerts/:id/tickets.  It
// stocks the concert's pool with quantity new available tickets.
func (h *BackstageHandler) AddTickets(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid concert id"})
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Quantity < 1 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "quantity must be at least 1", "field": "quantity"})
	}

	ctx := c.Request().Context()
	if _, err := h.Concerts.GetByID(ctx, id); err != nil {
		if err == repository.ErrConcertNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Tickets.AddTickets(ctx, id, req.Quantity); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add tickets failed"})
	}
	remaining, err := h.Tickets.TicketsRemaining(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"added": req.Quantity, "tickets_remaining": remaining})
}

// PublishConcert handles POST /v1/backstage/concerts/:id/publish.
// Publishing is idempotent; a second call changes nothing.
func (h *BackstageHandler) PublishConcert(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid concert id"})
	}
	if err := h.Concerts.Publish(c.Request().Context(), id); err != nil {
		if err == repository.ErrConcertNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "publish failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"published": true})
}

// ListConcertOrders handles GET /v1/backstage/concerts/:id/orders.
// With an email query parameter it answers "does this customer have an
// order for this concert"; without one it returns nothing.
func (h *BackstageHandler) ListConcertOrders(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid concert id"})
	}
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "email query parameter is required", "field": "email"})
	}
	orders, err := h.Orders.FindByConcertAndEmail(c.Request().Context(), id, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]echo.Map, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		items = append(items, echo.Map{
			"confirmation_number": o.ConfirmationNumber,
			"email":               o.Email,
			"amount_cents":        o.AmountCents,
			"created_at":          o.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetOrder handles GET /v1/backstage/orders/:confirmation.
func (h *BackstageHandler) GetOrder(c echo.Context) error {
	confirmation := c.Param("confirmation")
	order, err := h.Orders.GetByConfirmation(c.Request().Context(), confirmation)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"confirmation_number": order.ConfirmationNumber,
		"concert_id":          order.ConcertID,
		"email":               order.Email,
		"ticket_quantity":     order.TicketQuantity(),
		"amount_cents":        order.AmountCents,
		"created_at":          order.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// CancelOrder handles DELETE /v1/backstage/orders/:confirmation.  The
// order's tickets return to the pool and the order is deleted as one
// unit, so the remaining-ticket count grows by exactly the order's
// quantity.
func (h *BackstageHandler) CancelOrder(c echo.Context) error {
	confirmation := c.Param("confirmation")
	if err := h.Service.CancelOrder(c.Request().Context(), confirmation); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
