// Package repository provides data access for concerts, tickets, orders
// and users over MySQL.  Sentinel errors defined here let handlers and
// the order service distinguish failure scenarios without inspecting
// driver errors: ErrNotEnoughTicketsRemain maps to a 422 response,
// ErrConcertNotFound and ErrOrderNotFound to 404, and
// ErrReservationExpired tells the purchase flow that its hold lapsed
// before the order could be committed.
package repository

import "errors"

// ErrConcertNotFound is returned when a concert does not exist or is
// not published.  Unpublished concerts are indistinguishable from
// missing ones to the outside world.
var ErrConcertNotFound = errors.New("concert not found")

// ErrNotEnoughTicketsRemain is returned when a reservation asks for
// more tickets than are currently available.  The reservation takes
// nothing in that case; partial holds never happen.
var ErrNotEnoughTicketsRemain = errors.New("not enough tickets remain")

// ErrReservationExpired is returned when a commit arrives after the
// reservation's hold lapsed and its tickets have been (or are being)
// returned to the pool.  The purchase must be restarted.
var ErrReservationExpired = errors.New("reservation expired")

// ErrOrderNotFound is returned when no order exists for the given
// confirmation number.
var ErrOrderNotFound = errors.New("order not found")

// ErrEmailExists is returned when registering a user whose email is
// already taken.
var ErrEmailExists = errors.New("email already exists")
