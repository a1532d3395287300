package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/kbirmhrjn/ticketbeast-1/internal/model"
)

// OrderRepo provides access to the orders table.  Creating an order and
// binding its tickets happens inside one transaction so a purchase
// either fully materializes or leaves no trace; cancellation releases
// the tickets and deletes the order the same way, so a ticket can never
// be left ordered against a nonexistent order.
type OrderRepo struct {
	db      *sql.DB
	tickets *TicketRepo
}

// NewOrderRepo returns an OrderRepo bound to the database.  The ticket
// repo performs the ticket state transitions inside order transactions.
func NewOrderRepo(db *sql.DB, tickets *TicketRepo) *OrderRepo {
	return &OrderRepo{db: db, tickets: tickets}
}

// CreateFromReservation converts a paid reservation into a durable
// order.  The order row is inserted and the held tickets are committed
// to it inside a single transaction.  If the reservation lapsed before
// the commit, the transaction rolls back, no order row survives, and
// ErrReservationExpired is returned.
func (r *OrderRepo) CreateFromReservation(ctx context.Context, concert *model.Concert, email string, res *model.Reservation) (*model.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	confirmation := uuid.NewString()
	amount := res.TotalCost(concert.TicketPriceCents)

	result, err := tx.ExecContext(ctx,
		`INSERT INTO orders (concert_id, confirmation_number, email, amount_cents)
         VALUES (?, ?, ?, ?)`,
		concert.ID, confirmation, strings.ToLower(strings.TrimSpace(email)), amount,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	orderID := uint64(id)

	if err := r.tickets.CommitTicketsTx(ctx, tx, res, orderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	order := &model.Order{
		ID:                 orderID,
		ConcertID:          concert.ID,
		ConfirmationNumber: confirmation,
		Email:              strings.ToLower(strings.TrimSpace(email)),
		AmountCents:        amount,
		TicketIDs:          res.TicketIDs,
	}
	return order, nil
}

// GetByConfirmation loads an order and its ticket ids by confirmation
// number.  Returns ErrOrderNotFound when no such order exists.
func (r *OrderRepo) GetByConfirmation(ctx context.Context, confirmation string) (*model.Order, error) {
	var o model.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, concert_id, confirmation_number, email, amount_cents, created_at
         FROM orders WHERE confirmation_number = ?`,
		confirmation,
	).Scan(&o.ID, &o.ConcertID, &o.ConfirmationNumber, &o.Email, &o.AmountCents, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	o.TicketIDs, err = r.tickets.IDsByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// FindByConcertAndEmail returns every order a purchaser placed for a
// concert, newest first.  The backstage UI uses this to answer "does an
// order exist for this customer".
func (r *OrderRepo) FindByConcertAndEmail(ctx context.Context, concertID uint64, email string) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, concert_id, confirmation_number, email, amount_cents, created_at
         FROM orders WHERE concert_id = ? AND email = ? ORDER BY id DESC`,
		concertID, strings.ToLower(strings.TrimSpace(email)),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.ConcertID, &o.ConfirmationNumber, &o.Email, &o.AmountCents, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Cancel releases every ticket bound to the order back to the pool and
// deletes the order, in one transaction.  Returns ErrOrderNotFound when
// the confirmation number matches nothing; cancelling twice therefore
// fails cleanly on the second attempt.
func (r *OrderRepo) Cancel(ctx context.Context, confirmation string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var orderID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM orders WHERE confirmation_number = ? FOR UPDATE`,
		confirmation,
	).Scan(&orderID)
	if err == sql.ErrNoRows {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if _, err := r.tickets.ReleaseByOrderTx(ctx, tx, orderID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, orderID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
