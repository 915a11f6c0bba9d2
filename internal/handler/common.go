// Package handler contains the HTTP handlers binding the booking and
// settlement operations to Echo routes.  Handlers orchestrate the
// repositories directly: every mutation runs inside a single
// database transaction so a failure partway leaves no partial
// effect, and notifications are published after commit so a broker
// outage can never fail a business operation.
package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// getAccountID extracts the authenticated account id from the echo
// context.  The JWT middleware stores it under "account_id"; the
// value's concrete type depends on how the claims were decoded, so
// several numeric forms are accepted.
func getAccountID(c echo.Context) (uint64, error) {
	v := c.Get("account_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid account_id in context")
}

// getRole returns the authenticated account's role as stored by the
// JWT middleware.
func getRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// pathID parses the named path parameter as a positive id.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseDate parses a YYYY-MM-DD date string.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// validClock reports whether s is a valid HH:MM clock value.
func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
