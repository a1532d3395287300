package config // loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints and
// durations for limits and lifetimes.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	DBMaxOpen      int           // connection pool: max open connections
	DBMaxIdle      int           // connection pool: max idle connections
	DBConnLifetime time.Duration // connection pool: max connection lifetime
	JWTSecret      string        // secret used to sign JWTs
	AccessTTLMin   int           // access token time-to-live in minutes
	BcryptCost     int           // bcrypt cost for password hashing
	ReservationTTL time.Duration // how long a ticket hold stays valid
	SweepInterval  time.Duration // how often expired holds are reclaimed
	PaymentDriver  string        // "fake" or "omise"
	OmisePublicKey string        // omise public key (required for omise driver)
	OmiseSecretKey string        // omise secret key (required for omise driver)
	OmiseCurrency  string        // charge currency for the omise driver
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing
// values cause the program to exit with a fatal log message.  Values
// with sensible defaults (reservation TTL, sweep interval, payment
// driver) are optional.
func Load() Config {
	cfg := Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		DBMaxOpen:      envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdle:      envInt("DB_MAX_IDLE_CONNS", 10),
		DBConnLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		ReservationTTL: time.Duration(envInt("RESERVATION_TTL_SEC", 300)) * time.Second,
		SweepInterval:  time.Duration(envInt("RESERVATION_SWEEP_SEC", 60)) * time.Second,
		PaymentDriver:  envStr("PAYMENT_DRIVER", "fake"),
		OmisePublicKey: os.Getenv("OMISE_PUBLIC_KEY"),
		OmiseSecretKey: os.Getenv("OMISE_SECRET_KEY"),
		OmiseCurrency:  envStr("OMISE_CURRENCY", "usd"),
	}
	if cfg.PaymentDriver == "omise" && (cfg.OmisePublicKey == "" || cfg.OmiseSecretKey == "") {
		log.Fatal("PAYMENT_DRIVER=omise requires OMISE_PUBLIC_KEY and OMISE_SECRET_KEY")
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer.  If conversion fails, the application logs a fatal error and
// exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
