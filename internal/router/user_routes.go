package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Pranai222/eventvenue-platform/internal/handler"
	"github.com/Pranai222/eventvenue-platform/internal/middleware"
)

// RegisterUser registers USER-scoped endpoints under /v1.  All
// routes require a valid JWT and the USER role.
func RegisterUser(e *echo.Echo, bh *handler.BookingHandler, ph *handler.PointsHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER"),
	)

	// ---- Bookings ----
	g.POST("/bookings/quote", bh.Quote)
	g.POST("/bookings", bh.Create)
	g.GET("/bookings/:id", bh.Get)
	g.DELETE("/bookings/:id", bh.Cancel)
	g.GET("/my-bookings", bh.ListMine)

	// ---- Points ----
	g.POST("/points/purchase", ph.Purchase)

	// Balance and history are shared with vendors; the handler reads
	// the ledger side matching the caller's role.
	shared := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER", "VENDOR"),
	)
	shared.GET("/points", ph.Balance)
	shared.GET("/points/history", ph.History)
}
