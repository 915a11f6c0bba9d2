// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Pranai222/eventvenue-platform/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance: the health check and the public
// browse endpoints for venues and events.
func RegisterRoutes(e *echo.Echo, vh *handler.VenueHandler, eh *handler.EventHandler) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)

	// Public browse: guests can inspect a venue or event, its seat
	// map and its availability before authenticating to book.
	e.GET("/v1/venues/:id", vh.Get)
	e.GET("/v1/venues/:id/availability", vh.Availability)
	e.GET("/v1/events/:id", eh.Get)
	e.GET("/v1/events/:id/seats", eh.ListSeats)
}
