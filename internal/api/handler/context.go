package handler

import (
	"github.com/labstack/echo/v4"
)

// claimEmail returns the authenticated user's email from the JWT claims placed
// in the request context by the auth middleware, or "" when unauthenticated.
func claimEmail(c echo.Context) string {
	if v, ok := c.Get("email").(string); ok {
		return v
	}
	return ""
}

// claimUserID returns the authenticated user's id from the request context.
func claimUserID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok {
		return v
	}
	return ""
}
