package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Pranai222/eventvenue-platform/internal/handler"
	"github.com/Pranai222/eventvenue-platform/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// Settings writes take effect immediately for all subsequent pricing
// computations; there is no cache to flush.
func RegisterAdmin(e *echo.Echo, ah *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	g.GET("/settings", ah.GetSettings)
	g.PATCH("/settings", ah.UpdateSettings)
	g.PUT("/settings/conversion-rate", ah.UpdateConversionRate)
	g.PUT("/settings/platform-fees", ah.UpdatePlatformFees)
}
