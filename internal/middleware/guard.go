package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// AuthStatus is the externally supplied authentication state the guard
// decides on. Loading means the status is not yet known.
type AuthStatus int

const (
	AuthLoading AuthStatus = iota
	AuthAuthenticated
	AuthUnauthenticated
)

// GuardAction is the outcome of a guard decision.
type GuardAction int

const (
	// GuardAllow passes the request through unchanged.
	GuardAllow GuardAction = iota
	// GuardDefer means no decision can be made yet (auth state still loading).
	GuardDefer
	// GuardRedirect sends the client to Decision.Target.
	GuardRedirect
)

// Decision is the result of evaluating the route guard.
type Decision struct {
	Action GuardAction
	// Target is the redirect destination when Action is GuardRedirect.
	Target string
}

// Decide is the guard's pure decision function. It holds no state of its own:
// everything it needs arrives as arguments.
//
//   - status still loading: defer, no navigation decision is made.
//   - unauthenticated on a protected path: redirect to loginPath carrying the
//     original destination as a return_to query parameter.
//   - authenticated on a guest-only path (login/signup): redirect back to the
//     saved return path, or to landingPath when none was saved.
//   - otherwise: allow.
func Decide(status AuthStatus, requireAuth bool, currentPath, savedReturnPath, loginPath, landingPath string) Decision {
	if status == AuthLoading {
		return Decision{Action: GuardDefer}
	}

	if requireAuth {
		if status == AuthUnauthenticated {
			target := loginPath
			if currentPath != "" {
				target += "?return_to=" + url.QueryEscape(currentPath)
			}
			return Decision{Action: GuardRedirect, Target: target}
		}
		return Decision{Action: GuardAllow}
	}

	// Guest-only route (requireAuth == false guards login/signup pages).
	if status == AuthAuthenticated {
		if savedReturnPath != "" {
			return Decision{Action: GuardRedirect, Target: savedReturnPath}
		}
		return Decision{Action: GuardRedirect, Target: landingPath}
	}
	return Decision{Action: GuardAllow}
}

// statusFromLocals maps the request's auth locals onto an AuthStatus.
// AuthRequired/optional-auth middleware sets "userID" for valid tokens.
func statusFromLocals(c *fiber.Ctx) AuthStatus {
	if c.Locals("userID") != nil {
		return AuthAuthenticated
	}
	return AuthUnauthenticated
}

// RequireAuth redirects unauthenticated requests to loginPath, preserving the
// original destination in a return_to query parameter.
func RequireAuth(loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := Decide(statusFromLocals(c), true, c.Path(), "", loginPath, "")
		if d.Action == GuardRedirect {
			return c.Redirect(d.Target, fiber.StatusFound)
		}
		return c.Next()
	}
}

// GuestOnly redirects authenticated requests away from auth-only pages
// (login, signup) to the saved return_to destination or landingPath.
func GuestOnly(landingPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		saved := c.Query("return_to")
		d := Decide(statusFromLocals(c), false, c.Path(), saved, "", landingPath)
		if d.Action == GuardRedirect {
			return c.Redirect(d.Target, fiber.StatusFound)
		}
		return c.Next()
	}
}
