// Package guard implements the console's navigation-time access
// checks: a public-only gate for the login and register pages and a
// role gate for protected pages. Both are pure functions of the
// current session; denial is always a redirect, never a rendered page.
package guard

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pettrack/console/model"
)

// SessionState is the read surface guards consult. EnforceValidity is
// the one explicitly-invoked action: it cleans up an expired session
// before the pure checks run.
type SessionState interface {
	IsAuthenticated() bool
	HasRole(role model.UserRole) bool
	EnforceValidity(ctx context.Context)
}

// Config holds the guard redirect targets
type Config struct {
	LoginPath        string
	LandingPath      string
	UnauthorizedPath string
	// RejectedRouteKey names the cookie remembering the path that was
	// denied, so a later login can return there.
	RejectedRouteKey string
}

// DefaultConfig returns the console's route targets
func DefaultConfig() Config {
	return Config{
		LoginPath:        "/login",
		LandingPath:      "/home",
		UnauthorizedPath: "/unauthorized",
		RejectedRouteKey: "rejected_route",
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.LoginPath == "" {
		c.LoginPath = def.LoginPath
	}
	if c.LandingPath == "" {
		c.LandingPath = def.LandingPath
	}
	if c.UnauthorizedPath == "" {
		c.UnauthorizedPath = def.UnauthorizedPath
	}
	if c.RejectedRouteKey == "" {
		c.RejectedRouteKey = def.RejectedRouteKey
	}
	return c
}

// PublicOnly blocks authenticated users from public-only pages,
// redirecting them to the landing page instead.
func PublicOnly(state SessionState, config ...Config) fiber.Handler {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}
	cfg = cfg.withDefaults()

	return func(c *fiber.Ctx) error {
		state.EnforceValidity(c.UserContext())

		if state.IsAuthenticated() {
			return c.Redirect(cfg.LandingPath, redirectStatus(c))
		}

		return c.Next()
	}
}

// RequireRole blocks unauthenticated or insufficiently privileged
// users from protected pages. No valid token redirects to login; a
// valid token with a role outside allowedRoles redirects to the
// unauthorized page. Unknown roles fail closed.
func RequireRole(state SessionState, allowedRoles []model.UserRole, config ...Config) fiber.Handler {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}
	cfg = cfg.withDefaults()

	return func(c *fiber.Ctx) error {
		state.EnforceValidity(c.UserContext())

		if !state.IsAuthenticated() {
			setRejectedRoute(c, cfg)
			return c.Redirect(cfg.LoginPath, redirectStatus(c))
		}

		for _, role := range allowedRoles {
			if model.IsValidRole(role) && state.HasRole(role) {
				return c.Next()
			}
		}

		return c.Redirect(cfg.UnauthorizedPath, redirectStatus(c))
	}
}

// GetRedirect consumes the remembered rejected route, falling back to
// def when none was set.
func GetRedirect(c *fiber.Ctx, cfg Config, def string) string {
	cfg = cfg.withDefaults()

	r := c.Cookies(cfg.RejectedRouteKey)
	if r == "" {
		return def
	}

	clearRejectedRoute(c, cfg)
	return r
}

func setRejectedRoute(c *fiber.Ctx, cfg Config) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.RejectedRouteKey,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func clearRejectedRoute(c *fiber.Ctx, cfg Config) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.RejectedRouteKey,
		Value:    "",
		Expires:  time.Now().Add(-24 * 365 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func redirectStatus(c *fiber.Ctx) int {
	if c.Method() == fiber.MethodGet {
		return http.StatusFound
	}
	return http.StatusSeeOther
}
