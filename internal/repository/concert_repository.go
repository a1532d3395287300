package repository

import (
	"context"
	"database/sql"

	"github.com/kbirmhrjn/ticketbeast-1/internal/model"
)

// ConcertRepo provides access to the concerts table.  Publishing is the
// only mutation allowed after tickets go on sale; everything else about
// a concert is written once by the backstage authoring flow.  All
// timestamps are stored and compared in UTC.
type ConcertRepo struct {
	db *sql.DB
}

// NewConcertRepo returns a ConcertRepo bound to the given database.
func NewConcertRepo(db *sql.DB) *ConcertRepo { return &ConcertRepo{db: db} }

const concertColumns = `id, title, subtitle, date, ticket_price_cents, venue,
    venue_address, city, state, zip, additional_information, published_at,
    created_at, updated_at`

// Create inserts a new draft concert and populates its generated ID.
func (r *ConcertRepo) Create(ctx context.Context, c *model.Concert) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO concerts
            (title, subtitle, date, ticket_price_cents, venue, venue_address,
             city, state, zip, additional_information)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Subtitle, c.Date.UTC().Format("2006-01-02 15:04:05"),
		c.TicketPriceCents, c.Venue, c.VenueAddress,
		c.City, c.State, c.Zip, c.AdditionalInformation,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID loads a concert regardless of publish state.  Backstage
// endpoints use this; public ones go through GetPublished.
func (r *ConcertRepo) GetByID(ctx context.Context, id uint64) (*model.Concert, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+concertColumns+` FROM concerts WHERE id = ?`, id)
	return scanConcert(row)
}

// GetPublished loads a concert only if it has been published.  A draft
// concert is reported as not found, so unpublished inventory is
// invisible to purchasers.
func (r *ConcertRepo) GetPublished(ctx context.Context, id uint64) (*model.Concert, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+concertColumns+` FROM concerts WHERE id = ? AND published_at IS NOT NULL`, id)
	return scanConcert(row)
}

// ListPublished returns all published concerts ordered by date.
func (r *ConcertRepo) ListPublished(ctx context.Context) ([]model.Concert, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+concertColumns+` FROM concerts WHERE published_at IS NOT NULL ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Concert
	for rows.Next() {
		c, err := scanConcertRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Publish marks the concert as on sale.  Publishing an already
// published concert is a no-op; a missing concert is an error.
func (r *ConcertRepo) Publish(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE concerts SET published_at = UTC_TIMESTAMP()
         WHERE id = ? AND published_at IS NULL`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "already published" from "does not exist".
		var exists int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM concerts WHERE id = ?`, id).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrConcertNotFound
		}
		return err
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows for the scan helpers below.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConcert(row *sql.Row) (*model.Concert, error) {
	c, err := scanConcertRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrConcertNotFound
	}
	return c, err
}

func scanConcertRow(s rowScanner) (*model.Concert, error) {
	var c model.Concert
	var publishedAt sql.NullTime
	err := s.Scan(
		&c.ID, &c.Title, &c.Subtitle, &c.Date, &c.TicketPriceCents, &c.Venue,
		&c.VenueAddress, &c.City, &c.State, &c.Zip, &c.AdditionalInformation,
		&publishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t := publishedAt.Time.UTC()
		c.PublishedAt = &t
	}
	c.Date = c.Date.UTC()
	return &c, nil
}
