package guard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pettrack/console/guard"
	"github.com/pettrack/console/model"
)

type fakeState struct {
	authenticated bool
	role          model.UserRole
	enforced      int
}

func (f *fakeState) IsAuthenticated() bool { return f.authenticated }

func (f *fakeState) HasRole(role model.UserRole) bool { return f.role == role }

func (f *fakeState) EnforceValidity(ctx context.Context) { f.enforced++ }

func okHandler(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func TestPublicOnly(t *testing.T) {
	t.Run("lets anonymous visitors through", func(t *testing.T) {
		state := &fakeState{}
		app := fiber.New()
		app.Get("/login", guard.PublicOnly(state), okHandler)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, state.enforced)
	})

	t.Run("redirects authenticated users to the landing page", func(t *testing.T) {
		state := &fakeState{authenticated: true, role: model.RoleUser}
		app := fiber.New()
		app.Get("/login", guard.PublicOnly(state), okHandler)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/home", resp.Header.Get("Location"))
	})
}

func TestRequireRole(t *testing.T) {
	allowed := []model.UserRole{model.RoleUser, model.RoleEditor, model.RoleAdmin}

	t.Run("redirects anonymous visitors to login and remembers the route", func(t *testing.T) {
		state := &fakeState{}
		app := fiber.New()
		app.Get("/animals", guard.RequireRole(state, allowed), okHandler)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/animals", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))

		cookie := resp.Header.Get("Set-Cookie")
		assert.Contains(t, cookie, "rejected_route")
		assert.Contains(t, cookie, "/animals")
	})

	t.Run("lets a permitted role through", func(t *testing.T) {
		state := &fakeState{authenticated: true, role: model.RoleUser}
		app := fiber.New()
		app.Get("/animals", guard.RequireRole(state, allowed), okHandler)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/animals", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("redirects an insufficient role to unauthorized", func(t *testing.T) {
		state := &fakeState{authenticated: true, role: model.RoleUser}
		app := fiber.New()
		app.Get("/users", guard.RequireRole(state, []model.UserRole{model.RoleAdmin}), okHandler)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))
	})

	t.Run("unknown roles fail closed even when listed", func(t *testing.T) {
		state := &fakeState{authenticated: true, role: "superuser"}
		app := fiber.New()
		app.Get("/users", guard.RequireRole(state, []model.UserRole{"superuser"}), okHandler)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))
	})

	t.Run("empty allow list denies everyone", func(t *testing.T) {
		state := &fakeState{authenticated: true, role: model.RoleAdmin}
		app := fiber.New()
		app.Get("/hidden", guard.RequireRole(state, nil), okHandler)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/hidden", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))
	})
}

func TestGetRedirect(t *testing.T) {
	app := fiber.New()
	app.Get("/check", func(c *fiber.Ctx) error {
		return c.SendString(guard.GetRedirect(c, guard.Config{}, "/home"))
	})

	t.Run("falls back to the default", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/check", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("consumes the remembered route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/check", nil)
		req.AddCookie(&http.Cookie{Name: "rejected_route", Value: "/animals"})

		resp, err := app.Test(req)
		require.NoError(t, err)

		body := make([]byte, 32)
		n, _ := resp.Body.Read(body)
		assert.Equal(t, "/animals", string(body[:n]))
	})
}

func TestRoutePolicy(t *testing.T) {
	policy := guard.DefaultPolicy()

	t.Run("staff segments allow every role", func(t *testing.T) {
		roles, ok := policy.AllowedRoles("animals")
		require.True(t, ok)
		assert.ElementsMatch(t, []model.UserRole{model.RoleUser, model.RoleEditor, model.RoleAdmin}, roles)
	})

	t.Run("users is admin only", func(t *testing.T) {
		roles, ok := policy.AllowedRoles("users")
		require.True(t, ok)
		assert.Equal(t, []model.UserRole{model.RoleAdmin}, roles)
	})

	t.Run("unknown segments fail closed", func(t *testing.T) {
		_, ok := policy.AllowedRoles("billing")
		assert.False(t, ok)
	})
}
