package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Pranai222/eventvenue-platform/internal/handler"
	"github.com/Pranai222/eventvenue-platform/internal/middleware"
)

// RegisterVendor registers VENDOR-scoped endpoints under /v1/vendor.
// All routes require a valid JWT and the VENDOR role.
func RegisterVendor(e *echo.Echo, vh *handler.VenueHandler, eh *handler.EventHandler, bh *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1/vendor",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("VENDOR"),
	)

	// ---- Venues ----
	g.POST("/venues", vh.Create)
	g.GET("/venues", vh.ListMine)
	g.PATCH("/venues/:id", vh.Update)
	g.GET("/venues/:id/bookings", bh.ListForVenue)

	// ---- Events ----
	g.POST("/events", eh.Create)
	g.GET("/events", eh.ListMine)
	g.PATCH("/events/:id", eh.Update)
	g.POST("/events/:id/reschedule", eh.Reschedule)
	g.POST("/events/:id/cancel", eh.Cancel)
	g.GET("/events/:id/bookings", bh.ListForEvent)
}
