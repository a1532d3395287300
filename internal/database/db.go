package database

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Options describes how to reach MySQL and how large the connection
// pool may grow.  Pool limits of zero leave the driver defaults alone.
type Options struct {
	User            string
	Pass            string
	Host            string
	Port            string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// dsn renders the options through the driver's own config type.
// Reservation deadlines are compared against UTC_TIMESTAMP() in SQL, so
// DATETIME columns must scan into time.Time values located in UTC or
// the two sides of those comparisons drift apart.
func (o Options) dsn() string {
	mc := mysql.NewConfig()
	mc.User = o.User
	mc.Passwd = o.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(o.Host, o.Port)
	mc.DBName = o.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// Open connects to MySQL with the given options, applies the pool
// limits and verifies the connection with a short ping.
func Open(opts Options) (*sql.DB, error) {
	db, err := sql.Open("mysql", opts.dsn())
	if err != nil {
		return nil, err
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
