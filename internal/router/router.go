package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/parkspot/booking-front/internal/handler"
	"github.com/parkspot/booking-front/internal/middleware"
	"github.com/parkspot/booking-front/internal/session"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers and
// monitoring to verify the gateway is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires login plus the session-protected identity routes.
// Login lives outside the protected group because no session exists yet;
// logout and /me require both a valid JWT and a live session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, store *session.Store) {
	e.POST("/v1/auth/login", a.Login)

	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.SessionLookup(store))
	g.POST("/auth/logout", a.Logout)
	g.GET("/me", a.Me)
}

// RegisterBooking wires the flow-state endpoints and the upstream-facing
// lot routes.  The lot routes additionally carry the rate limiter and,
// for search, the response cache; both degrade to pass-throughs when
// Redis is unavailable.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, store *session.Store, cache, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/session", middleware.JWTAuth(jwtSecret), middleware.SessionLookup(store))
	g.GET("", b.State)
	g.POST("/navigate", b.Navigate)
	g.POST("/datetime", b.ConfirmDateTime)
	g.DELETE("/datetime", b.CancelDateTime)
	g.POST("/parking-lot", b.SelectParkingLot)
	g.POST("/seat", b.ConfirmSeat)
	g.POST("/payment", b.CompletePayment)
	g.POST("/reset", b.Reset)

	lots := e.Group("/v1/parking-lots", middleware.JWTAuth(jwtSecret), middleware.SessionLookup(store), limit)
	// Search results may be cached per session+query; the spaces route is
	// never cached because each call participates in the stale-fetch guard.
	lots.GET("", b.Search, cache)
	lots.GET("/:id/spaces", b.Spaces)
}

// RegisterAccount wires the my-page routes: reservations and vehicles
// proxied from the backend, and the locally mirrored confirmations.
func RegisterAccount(e *echo.Echo, a *handler.AccountHandler, jwtSecret string, store *session.Store) {
	g := e.Group("/v1/me", middleware.JWTAuth(jwtSecret), middleware.SessionLookup(store))
	g.GET("/reservations", a.Reservations)
	g.GET("/vehicles", a.Vehicles)
	g.POST("/vehicles", a.AddVehicle)
	g.GET("/confirmations", a.Confirmations)
}
