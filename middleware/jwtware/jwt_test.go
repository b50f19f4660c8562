package jwtware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pettrack/console/middleware/jwtware"
	"github.com/pettrack/console/model"
	"github.com/pettrack/console/session"
)

const testKid = "test-key-1"

var testKey = []byte("signing-key-for-tests")

func mintToken(t *testing.T, role model.UserRole, ttl time.Duration) string {
	t.Helper()

	claims := &session.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UID:      "user-1",
		UserRole: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = testKid

	signed, err := token.SignedString(testKey)
	require.NoError(t, err)
	return signed
}

func newProtectedApp(cfg jwtware.Config) *fiber.App {
	app := fiber.New()
	app.Use(jwtware.New(cfg))
	app.Get("/protected", func(c *fiber.Ctx) error {
		claims, ok := jwtware.ClaimsFromContext(c, "user")
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(claims.UserID())
	})
	return app
}

func signingKeysConfig() jwtware.Config {
	return jwtware.Config{
		SigningKeys: map[string]jwtware.SigningKey{
			testKid: {JWTAlg: "HS256", Key: testKey},
		},
	}
}

func TestMiddleware_SigningKeys(t *testing.T) {
	app := newProtectedApp(signingKeysConfig())

	t.Run("accepts a valid token and exposes claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, model.RoleUser, time.Hour))

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := make([]byte, 32)
		n, _ := resp.Body.Read(body)
		assert.Equal(t, "user-1", string(body[:n]))
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, model.RoleUser, -time.Hour))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		claims := &session.TokenClaims{UID: "user-1"}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		token.Header["kid"] = testKid
		signed, err := token.SignedString([]byte("some-other-key"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestMiddleware_RoleChecks(t *testing.T) {
	t.Run("required role blocks other roles", func(t *testing.T) {
		cfg := signingKeysConfig()
		cfg.RequiredRole = model.RoleAdmin
		app := newProtectedApp(cfg)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, model.RoleUser, time.Hour))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("minimum role honors the hierarchy", func(t *testing.T) {
		cfg := signingKeysConfig()
		cfg.MinimumRole = model.RoleEditor
		app := newProtectedApp(cfg)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, model.RoleAdmin, time.Hour))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		req = httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, model.RoleUser, time.Hour))

		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestMiddleware_Filter(t *testing.T) {
	cfg := signingKeysConfig()
	cfg.Filter = func(c *fiber.Ctx) bool {
		return c.Path() == "/protected"
	}

	app := newProtectedApp(cfg)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)

	// filtered requests skip validation entirely, so the handler finds
	// no claims in the context
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetExtractors(t *testing.T) {
	app := fiber.New()
	app.Get("/q", func(c *fiber.Ctx) error {
		raw, err := jwtware.ExtractRawToken(c, jwtware.GetExtractors("query:auth_token"))
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.SendString(raw)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/q?auth_token=tok-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/q", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
