package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/kbirmhrjn/ticketbeast-1/internal/config"     // import configuration for rate limiting options
	"github.com/kbirmhrjn/ticketbeast-1/internal/handler"    // import the handlers that implement business logic
	"github.com/kbirmhrjn/ticketbeast-1/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/kbirmhrjn/ticketbeast-1/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the box-office authentication routes.  Staff
// accounts are created and exchanged for access tokens here; the tokens
// unlock the backstage group registered below.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle staff registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle staff login at /v1/auth/login.
	g.POST("/login", a.Login)
}

// RegisterPublic registers unauthenticated browse and purchase endpoints.
// Guests can list published concerts, inspect a single concert and place
// an order without any session.  The purchase route is rate limited per
// client IP so a single buyer cannot hammer the reservation path.
func RegisterPublic(e *echo.Echo, p *handler.ConcertHandler, purchase *handler.PurchaseHandler, rdb *redis.Client, rl config.RateLimitConfig) {
	// Expose the list of published concerts.
	e.GET("/v1/concerts", p.ListConcerts)
	// Concert details plus an advisory remaining-ticket count.
	e.GET("/v1/concerts/:id", p.GetConcert)
	// Place an order for a published concert.  The rate limiter runs
	// before the handler; when Redis is unavailable it fails open.
	e.POST("/v1/concerts/:id/orders", purchase.Purchase, middleware.NewTokenBucket(rl, rdb))
}

// RegisterBackstage registers the authoring endpoints used by box-office
// staff.  Every route in this group requires a valid access token with
// the BOX_OFFICE role.
func RegisterBackstage(e *echo.Echo, b *handler.BackstageHandler, jwtSecret string) {
	g := e.Group("/v1/backstage")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleBoxOffice))

	// Create a draft concert.
	g.POST("/concerts", b.CreateConcert)
	// Stock a concert's ticket pool.
	g.POST("/concerts/:id/tickets", b.AddTickets)
	// Make a concert visible and purchasable.
	g.POST("/concerts/:id/publish", b.PublishConcert)
	// Find a customer's orders for a concert (?email=).
	g.GET("/concerts/:id/orders", b.ListConcertOrders)
	// Look up an order by its confirmation number.
	g.GET("/orders/:confirmation", b.GetOrder)
	// Cancel an order, returning its tickets to the pool.
	g.DELETE("/orders/:confirmation", b.CancelOrder)
}
