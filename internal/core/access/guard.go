// Package access holds the single navigation/permission decision for the
// admin console. Role checks that used to be scattered across screens are
// consolidated into one declarative admin-only-prefix table.
package access

import (
	"strings"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// Decision is the outcome of evaluating a session against a requested path.
type Decision int

const (
	// NoDecision means the session is still hydrating; the caller should
	// render a loading placeholder and re-evaluate.
	NoDecision Decision = iota
	Allow
	RedirectToLogin
	RedirectToDefault
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToDefault:
		return "redirect_to_default"
	default:
		return "no_decision"
	}
}

// DefaultPath is where non-admin users are sent when they request an
// admin-only screen.
const DefaultPath = "/admin/dashboard"

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/login"

// adminOnlyPrefixes lists the path prefixes only the admin role may reach.
var adminOnlyPrefixes = []string{
	"/admin/users",
	"/admin/roles",
	"/admin/settings",
	"/admin/payments",
	"/admin/customers",
	"/admin/physicians",
	"/admin/create-link",
}

// Decide derives the navigation decision for a requested path. This check is
// advisory, console-level gating: the identity it trusts is client-supplied,
// and server-side authorization still applies on every API call.
func Decide(sess *domain.Session, isLoading bool, requestedPath string) Decision {
	if isLoading {
		return NoDecision
	}
	if sess == nil {
		return RedirectToLogin
	}
	if sess.RoleName != domain.RoleAdmin && isAdminOnly(requestedPath) {
		return RedirectToDefault
	}
	return Allow
}

func isAdminOnly(path string) bool {
	for _, prefix := range adminOnlyPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
