package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kbirmhrjn/ticketbeast-1/internal/billing"
	"github.com/kbirmhrjn/ticketbeast-1/internal/model"
	"github.com/kbirmhrjn/ticketbeast-1/internal/repository"
	"github.com/kbirmhrjn/ticketbeast-1/internal/service"
)

// The handler tests exercise validation and status mapping only; the
// purchase flow itself is covered in the service package.

type stubConcerts struct{ err error }

func (s *stubConcerts) GetPublished(context.Context, uint64) (*model.Concert, error) {
	return nil, s.err
}

type stubInventory struct{ err error }

func (s *stubInventory) Reserve(context.Context, uint64, int) (*model.Reservation, error) {
	return nil, s.err
}

func (s *stubInventory) Release(context.Context, *model.Reservation) error { return nil }

type stubOrders struct{}

func (stubOrders) CreateFromReservation(context.Context, *model.Concert, string, *model.Reservation) (*model.Order, error) {
	return nil, repository.ErrReservationExpired
}

func (stubOrders) Cancel(context.Context, string) error { return nil }

func newPurchaseContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/concerts/1/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/concerts/:id/orders")
	c.SetParamNames("id")
	c.SetParamValues("1")
	return c, rec
}

func decodeField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	field, _ := body["field"].(string)
	return field
}

func TestPurchaseValidation(t *testing.T) {
	t.Parallel()

	h := NewPurchaseHandler(service.NewOrderService(
		&stubConcerts{err: repository.ErrConcertNotFound}, &stubInventory{}, stubOrders{}, billing.NewFakeGateway(),
	))

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing email", `{"ticket_quantity":2,"payment_token":"tok"}`, "email"},
		{"invalid email", `{"email":"not-an-email","ticket_quantity":2,"payment_token":"tok"}`, "email"},
		{"zero quantity", `{"email":"jane@example.com","ticket_quantity":0,"payment_token":"tok"}`, "ticket_quantity"},
		{"missing payment token", `{"email":"jane@example.com","ticket_quantity":2}`, "payment_token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newPurchaseContext(t, tc.body)
			if err := h.Purchase(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", rec.Code)
			}
			if got := decodeField(t, rec); got != tc.field {
				t.Fatalf("expected field %q flagged, got %q", tc.field, got)
			}
		})
	}
}

func TestPurchaseErrorStatus(t *testing.T) {
	t.Parallel()

	validBody := `{"email":"jane@example.com","ticket_quantity":2,"payment_token":"tok"}`

	t.Run("unknown concert yields 404", func(t *testing.T) {
		h := NewPurchaseHandler(service.NewOrderService(
			&stubConcerts{err: repository.ErrConcertNotFound}, &stubInventory{}, stubOrders{}, billing.NewFakeGateway(),
		))
		c, rec := newPurchaseContext(t, validBody)
		if err := h.Purchase(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("sold out yields 422", func(t *testing.T) {
		published := model.Concert{ID: 1, TicketPriceCents: 3250}
		now := published.CreatedAt
		published.PublishedAt = &now
		h := NewPurchaseHandler(service.NewOrderService(
			publishedConcerts{&published}, &stubInventory{err: repository.ErrNotEnoughTicketsRemain}, stubOrders{}, billing.NewFakeGateway(),
		))
		c, rec := newPurchaseContext(t, validBody)
		if err := h.Purchase(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

type publishedConcerts struct{ c *model.Concert }

func (p publishedConcerts) GetPublished(context.Context, uint64) (*model.Concert, error) {
	return p.c, nil
}
