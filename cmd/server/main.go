package main // Entry point package

import (
	"context" // Context for background workers
	"log"     // Logging library

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/kbirmhrjn/ticketbeast-1/internal/billing"    // Payment gateways
	"github.com/kbirmhrjn/ticketbeast-1/internal/config"     // Internal config loader
	"github.com/kbirmhrjn/ticketbeast-1/internal/database"   // MySQL connection and migrations
	"github.com/kbirmhrjn/ticketbeast-1/internal/handler"    // HTTP handlers
	"github.com/kbirmhrjn/ticketbeast-1/internal/queue"      // RabbitMQ order journal
	"github.com/kbirmhrjn/ticketbeast-1/internal/repository" // Data access layer
	"github.com/kbirmhrjn/ticketbeast-1/internal/router"     // Internal router setup
	"github.com/kbirmhrjn/ticketbeast-1/internal/service"    // Order orchestration
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env wins

	cfg := config.Load() // Load environment config

	db, err := database.Open(database.Options{
		User:            cfg.DBUser,
		Pass:            cfg.DBPass,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpen,
		MaxIdleConns:    cfg.DBMaxIdle,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	// Repositories share the one connection pool.  The ticket repo owns
	// the hold TTL so every reservation it stamps expires consistently.
	concertRepo := repository.NewConcertRepo(db)
	ticketRepo := repository.NewTicketRepo(db, cfg.ReservationTTL)
	orderRepo := repository.NewOrderRepo(db, ticketRepo)
	userRepo := repository.NewUserRepo(db)

	// Select the payment gateway by driver.  The fake gateway charges
	// nothing and is only suitable outside production.
	var gateway billing.PaymentGateway
	switch cfg.PaymentDriver {
	case "omise":
		gw, err := billing.NewOmiseGateway(cfg.OmisePublicKey, cfg.OmiseSecretKey, cfg.OmiseCurrency)
		if err != nil {
			log.Fatalf("omise gateway init failed: %v", err)
		}
		gateway = gw
	default:
		log.Printf("payment driver %q: charges are simulated, not collected", cfg.PaymentDriver)
		gateway = billing.NewFakeGateway()
	}

	orderService := service.NewOrderService(concertRepo, ticketRepo, orderRepo, gateway)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background workers: the consumer journals placed orders from the
	// queue, the sweeper reclaims expired holds so abandoned checkouts
	// return to the pool even when nobody touches the rows.
	go queue.StartOrderConsumer()
	go service.StartReservationSweeper(ctx, ticketRepo, cfg.SweepInterval)

	rdb := config.NewRedisClient() // nil when Redis is unreachable; limiter fails open
	rlCfg := config.LoadRateLimitConfig()

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo))
	router.RegisterPublic(e, handler.NewConcertHandler(concertRepo, ticketRepo),
		handler.NewPurchaseHandler(orderService), rdb, rlCfg)
	router.RegisterBackstage(e, handler.NewBackstageHandler(concertRepo, ticketRepo, orderRepo, orderService), cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
