package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medibook/appointment-system/internal/core/access"
	"github.com/medibook/appointment-system/internal/core/domain"
)

// Access enforces the console navigation policy on a route group. The session
// projection is rebuilt from the JWT claims the Auth middleware injected, so
// the guard can decide synchronously. Decisions map onto responses:
//
//	RedirectToLogin   → 302 to /login
//	RedirectToDefault → 303 to the dashboard
//
// consolePath is the console screen the API route backs, evaluated against the
// admin-only prefix table.
func Access(consolePath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := sessionFromClaims(c)

			switch access.Decide(sess, false, consolePath) {
			case access.Allow:
				return next(c)
			case access.RedirectToLogin:
				return c.Redirect(http.StatusFound, access.LoginPath)
			case access.RedirectToDefault:
				return c.Redirect(http.StatusSeeOther, access.DefaultPath)
			default:
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
		}
	}
}

func sessionFromClaims(c echo.Context) *domain.Session {
	role, _ := c.Get("role").(string)
	if role == "" {
		return nil
	}
	userID, _ := c.Get("user_id").(string)
	email, _ := c.Get("email").(string)
	return &domain.Session{UserID: userID, Email: email, RoleName: role}
}
