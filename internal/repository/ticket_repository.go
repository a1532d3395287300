package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/kbirmhrjn/ticketbeast-1/internal/model"
)

// TicketRepo is the single authority for ticket state transitions and
// the concurrency boundary of the service.  Every transition runs as an
// atomic unit against the tickets table:
//
//	available --Reserve--> reserved --CommitTicketsTx--> ordered
//	reserved  --Release / ReleaseExpired--> available
//	ordered   --ReleaseByOrderTx (cancellation)--> available
//
// Reserve selects and stamps rows inside one transaction with the rows
// locked, so two concurrent calls can never both claim the same ticket.
// A hold is a shared reservation_token plus deadline stamped on the
// claimed rows; commit and release are both guarded by that token, which
// makes a late commit against a reclaimed hold fail cleanly instead of
// stealing rows back.  All timestamp comparisons happen in UTC.
type TicketRepo struct {
	db      *sql.DB
	holdTTL time.Duration // how long a reservation stays valid
}

// NewTicketRepo returns a TicketRepo bound to the database.  holdTTL is
// the lifetime of a reservation from the moment it is taken.
func NewTicketRepo(db *sql.DB, holdTTL time.Duration) *TicketRepo {
	return &TicketRepo{db: db, holdTTL: holdTTL}
}

// availableCond matches tickets that may be claimed: unsold rows whose
// hold, if any, has lapsed.  Treating lapsed holds as available makes
// reclamation lazy — an expired hold is overwritten by the next claim
// even before the sweeper gets to it.
const availableCond = `order_id IS NULL
    AND (reservation_token IS NULL OR reservation_expires_at <= UTC_TIMESTAMP())`

// AddTickets creates quantity new tickets in the available state for the
// concert.  Rows are inserted in one statement, mirroring how the pool
// is stocked before a concert goes on sale.
func (r *TicketRepo) AddTickets(ctx context.Context, concertID uint64, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	query := `INSERT INTO tickets (concert_id) VALUES `
	args := make([]interface{}, 0, quantity)
	for i := 0; i < quantity; i++ {
		if i > 0 {
			query += ","
		}
		query += "(?)"
		args = append(args, concertID)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// TicketsRemaining counts the tickets currently available for the
// concert.  The count is advisory only: it can race with concurrent
// reservations, so callers must never use it as a pre-check before
// Reserve — availability is re-validated atomically at claim time.
func (r *TicketRepo) TicketsRemaining(ctx context.Context, concertID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets WHERE concert_id = ? AND `+availableCond,
		concertID,
	).Scan(&n)
	return n, err
}

// Reserve atomically claims quantity available tickets for the concert
// and returns the resulting hold.  Selection is lowest-id-first for
// reproducibility.  If fewer than quantity tickets are available the
// transaction rolls back having claimed nothing and
// ErrNotEnoughTicketsRemain is returned.  The selected rows are locked
// for the duration of the selection+stamp, so no two concurrent calls
// can both observe the same ticket as available and both take it.  No
// external I/O happens while the lock is held.
func (r *TicketRepo) Reserve(ctx context.Context, concertID uint64, quantity int) (*model.Reservation, error) {
	if quantity <= 0 {
		return nil, ErrNotEnoughTicketsRemain
	}
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

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM tickets WHERE concert_id = ? AND `+availableCond+`
         ORDER BY id LIMIT ? FOR UPDATE`,
		concertID, quantity,
	)
	if err != nil {
		return nil, err
	}
	var ids []uint64
	for rows.Next() {
		var id uint64
		if scanErr := rows.Scan(&id); scanErr != nil {
			rows.Close()
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}
	if len(ids) < quantity {
		// All-or-nothing: rolling back releases the row locks without
		// having stamped anything.
		return nil, ErrNotEnoughTicketsRemain
	}

	token, err := randomToken(32)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	expiresAt := now.Add(r.holdTTL)

	query := `UPDATE tickets SET reservation_token = ?, reserved_at = UTC_TIMESTAMP(), reservation_expires_at = ? WHERE id IN (` + placeholders(len(ids)) + `)`
	args := make([]interface{}, 0, len(ids)+2)
	args = append(args, token, expiresAt.Format("2006-01-02 15:04:05"))
	for _, id := range ids {
		args = append(args, id)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return &model.Reservation{
		ConcertID:  concertID,
		TicketIDs:  ids,
		Token:      token,
		ReservedAt: now,
		ExpiresAt:  expiresAt,
	}, nil
}

// Release returns the reservation's tickets to the pool.  The update is
// keyed on the reservation token rather than the ticket ids: a ticket
// whose hold already lapsed and was re-claimed by another purchaser
// carries a different token and is left untouched.  Releasing an
// already-released reservation is a no-op, not an error.
func (r *TicketRepo) Release(ctx context.Context, res *model.Reservation) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tickets
         SET reservation_token = NULL, reserved_at = NULL, reservation_expires_at = NULL
         WHERE reservation_token = ?`,
		res.Token,
	)
	return err
}

// ReleaseExpired clears every hold whose deadline has passed and reports
// how many tickets were returned to the pool.  The sweeper calls this on
// an interval; the claim path also treats lapsed holds as available, so
// the sweep is a tidy-up rather than a correctness requirement.
func (r *TicketRepo) ReleaseExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tickets
         SET reservation_token = NULL, reserved_at = NULL, reservation_expires_at = NULL
         WHERE order_id IS NULL AND reservation_token IS NOT NULL
           AND reservation_expires_at <= UTC_TIMESTAMP()`,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CommitTicketsTx transitions the reservation's tickets to ordered,
// binding them to the given order, within the caller's transaction.
// The update requires every row to still carry the reservation token
// with an unexpired deadline; if any row fails that predicate the hold
// lapsed (and may have been reclaimed), so nothing is committed and
// ErrReservationExpired is returned.  The caller must roll back.
func (r *TicketRepo) CommitTicketsTx(ctx context.Context, tx *sql.Tx, res *model.Reservation, orderID uint64) error {
	query := `UPDATE tickets
        SET order_id = ?, reservation_token = NULL, reserved_at = NULL, reservation_expires_at = NULL
        WHERE id IN (` + placeholders(len(res.TicketIDs)) + `)
          AND reservation_token = ? AND reservation_expires_at > UTC_TIMESTAMP()`
	args := make([]interface{}, 0, len(res.TicketIDs)+2)
	args = append(args, orderID)
	for _, id := range res.TicketIDs {
		args = append(args, id)
	}
	args = append(args, res.Token)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n != int64(len(res.TicketIDs)) {
		return ErrReservationExpired
	}
	return nil
}

// ReleaseByOrderTx returns every ticket bound to the order to the pool
// within the caller's transaction and reports how many were released.
// Used by order cancellation so the order row and its ticket bindings
// disappear as one unit.
func (r *TicketRepo) ReleaseByOrderTx(ctx context.Context, tx *sql.Tx, orderID uint64) (int64, error) {
	result, err := tx.ExecContext(ctx,
		`UPDATE tickets SET order_id = NULL WHERE order_id = ?`, orderID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// IDsByOrder returns the ids of the tickets bound to an order, ascending.
func (r *TicketRepo) IDsByOrder(ctx context.Context, orderID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM tickets WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// placeholders builds "?,?,...,?" with n markers for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

// randomToken generates a cryptographically random hex string of n bytes
// (2n characters).  Reservation tokens use 32 bytes.
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
