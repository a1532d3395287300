package model

import (
	"fmt"
	"strings"
	"time"
)

// Concert represents a sellable event with a fixed per-ticket price.
// A concert is visible to the public (and purchasable) only once it has
// been published, i.e. its PublishedAt timestamp is non-nil.  Apart from
// publishing, a concert is treated as immutable once tickets have been
// sold.
//
// Fields:
//  ID                    – primary key identifier.
//  Title                 – headline act.
//  Subtitle              – supporting act or tagline.
//  Date                  – date and start time of the concert (UTC).
//  TicketPriceCents      – price of a single ticket in minor currency units.
//  Venue                 – venue name.
//  VenueAddress          – street address of the venue.
//  City, State, Zip      – venue location fields.
//  AdditionalInformation – free-form notes shown on the listing page.
//  PublishedAt           – when the concert went on sale (nil = draft).
//  CreatedAt             – creation timestamp.
//  UpdatedAt             – last update timestamp.
type Concert struct {
	ID                    uint64     // concerts.id
	Title                 string     // concerts.title
	Subtitle              string     // concerts.subtitle
	Date                  time.Time  // concerts.date
	TicketPriceCents      uint32     // concerts.ticket_price_cents
	Venue                 string     // concerts.venue
	VenueAddress          string     // concerts.venue_address
	City                  string     // concerts.city
	State                 string     // concerts.state
	Zip                   string     // concerts.zip
	AdditionalInformation string     // concerts.additional_information
	PublishedAt           *time.Time // concerts.published_at (nullable)
	CreatedAt             time.Time  // concerts.created_at
	UpdatedAt             time.Time  // concerts.updated_at
}

// IsPublished reports whether the concert has gone on sale.
func (c *Concert) IsPublished() bool {
	return c.PublishedAt != nil
}

// FormattedDate renders the concert date for listing pages,
// e.g. "December 1, 2016".
func (c *Concert) FormattedDate() string {
	return c.Date.Format("January 2, 2006")
}

// FormattedStartTime renders the concert start time for listing pages,
// e.g. "8:00pm".
func (c *Concert) FormattedStartTime() string {
	return strings.ToLower(c.Date.Format("3:04PM"))
}

// TicketPriceInDollars renders the ticket price in major currency units
// with two decimals, e.g. 6750 -> "67.50".
func (c *Concert) TicketPriceInDollars() string {
	return fmt.Sprintf("%.2f", float64(c.TicketPriceCents)/100)
}
