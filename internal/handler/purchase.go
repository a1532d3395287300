package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kbirmhrjn/ticketbeast-1/internal/billing"
	"github.com/kbirmhrjn/ticketbeast-1/internal/queue"
	"github.com/kbirmhrjn/ticketbeast-1/internal/repository"
	"github.com/kbirmhrjn/ticketbeast-1/internal/service"
)

// PurchaseHandler exposes the purchase boundary.  It validates request
// shape, hands the attempt to the order service, and maps the service's
// error taxonomy onto HTTP statuses: 404 for unknown/unpublished
// concerts, 422 for sold-out and declined-payment outcomes.
type PurchaseHandler struct {
	Orders *service.OrderService
}

func NewPurchaseHandler(orders *service.OrderService) *PurchaseHandler {
	return &PurchaseHandler{Orders: orders}
}

type purchaseReq struct {
	Email          string `json:"email"`
	TicketQuantity int    `json:"ticket_quantity"`
	PaymentToken   string `json:"payment_token"`
}

type purchaseResp struct {
	ConfirmationNumber string `json:"confirmation_number"`
	Email              string `json:"email"`
	TicketQuantity     int    `json:"ticket_quantity"`
	AmountCents        uint32 `json:"amount_cents"`
}

// Purchase handles POST /v1/concerts/:id/orders.  Field-level
// validation failures return 422 with the offending field named, the
// same shape the rest of the API uses for unprocessable input.
func (h *PurchaseHandler) Purchase(c echo.Context) error {
	concertID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || concertID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid concert id"})
	}
	var req purchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "email is required", "field": "email"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "email must be valid", "field": "email"})
	}
	if req.TicketQuantity < 1 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "ticket quantity must be at least 1", "field": "ticket_quantity"})
	}
	if req.PaymentToken == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "payment token is required", "field": "payment_token"})
	}

	ctx := c.Request().Context()
	order, err := h.Orders.Purchase(ctx, service.PurchaseInput{
		ConcertID:    concertID,
		Email:        req.Email,
		Quantity:     req.TicketQuantity,
		PaymentToken: req.PaymentToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConcertNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		case errors.Is(err, repository.ErrNotEnoughTicketsRemain):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "not enough tickets remain"})
		case errors.Is(err, billing.ErrPaymentFailed):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "payment failed"})
		case errors.Is(err, repository.ErrReservationExpired):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation expired, please retry"})
		case errors.Is(err, service.ErrInvalidQuantity):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "ticket quantity must be at least 1", "field": "ticket_quantity"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "purchase failed"})
		}
	}

	// Publish for downstream consumers; a broker outage must not fail a
	// purchase that already committed.
	_ = queue.PublishOrderPlaced(ctx, queue.OrderPlacedEvent{
		OrderID:            order.ID,
		ConfirmationNumber: order.ConfirmationNumber,
		ConcertID:          order.ConcertID,
		Email:              order.Email,
		TicketQuantity:     order.TicketQuantity(),
		AmountCents:        order.AmountCents,
		PlacedAt:           time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, purchaseResp{
		ConfirmationNumber: order.ConfirmationNumber,
		Email:              order.Email,
		TicketQuantity:     order.TicketQuantity(),
		AmountCents:        order.AmountCents,
	})
}
