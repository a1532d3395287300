// Package testutil provides MySQL helpers for repository integration
// tests.  Tests that call NewTestDB are skipped when no database is
// reachable, so the suite stays runnable without local infrastructure.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/kbirmhrjn/ticketbeast-1/internal/database"
)

const testLockName = "ticketbeast.tests"

func testEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewTestDB opens the test database, applies the embedded migrations
// and takes a named lock so packages sharing the database do not
// interleave.  The test is skipped when the database cannot be reached.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.Options{
		User:         testEnv("TEST_DB_USER", "root"),
		Pass:         os.Getenv("TEST_DB_PASS"),
		Host:         testEnv("TEST_DB_HOST", "127.0.0.1"),
		Port:         testEnv("TEST_DB_PORT", "3306"),
		Name:         testEnv("TEST_DB_NAME", "ticketbeast_test"),
		MaxOpenConns: 8,
	})
	if err != nil {
		t.Skipf("skipping MySQL integration tests: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lockTestDB(t, ctx, db)

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func lockTestDB(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()
	conn, err := db.Conn(ctx)
	if err != nil {
		t.Fatalf("acquire lock conn: %v", err)
	}
	var got int
	if err := conn.QueryRowContext(ctx, `SELECT GET_LOCK(?, 30)`, testLockName).Scan(&got); err != nil || got != 1 {
		conn.Close()
		t.Fatalf("acquire test lock: got=%d err=%v", got, err)
	}
	t.Cleanup(func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT RELEASE_LOCK(?)`, testLockName)
		conn.Close()
	})
}

// TruncateAll empties every table, children before parents so foreign
// keys never block the cleanup.
func TruncateAll(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()
	for _, table := range []string{"tickets", "orders", "concerts", "users"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("clear %s: %v", table, err)
		}
	}
}

// InsertConcert creates a published concert and returns its id.
func InsertConcert(t *testing.T, ctx context.Context, db *sql.DB, title string, priceCents uint32) uint64 {
	t.Helper()
	result, err := db.ExecContext(ctx,
		`INSERT INTO concerts
            (title, subtitle, date, ticket_price_cents, venue, venue_address,
             city, state, zip, additional_information, published_at)
         VALUES (?, '', '2026-12-01 20:00:00', ?, 'The Mosh Pit', '123 Example Lane',
             'Laraville', 'ON', '17916', '', UTC_TIMESTAMP())`,
		title, priceCents)
	if err != nil {
		t.Fatalf("insert concert: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("concert id: %v", err)
	}
	return uint64(id)
}

// InsertOrder creates a bare order row and returns its id.  Tickets are
// bound to it separately by the code under test.
func InsertOrder(t *testing.T, ctx context.Context, db *sql.DB, concertID uint64, confirmation, email string, amountCents uint32) uint64 {
	t.Helper()
	result, err := db.ExecContext(ctx,
		`INSERT INTO orders (concert_id, confirmation_number, email, amount_cents)
         VALUES (?, ?, ?, ?)`,
		concertID, confirmation, email, amountCents)
	if err != nil {
		t.Fatalf("insert order: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("order id: %v", err)
	}
	return uint64(id)
}
