package console_test

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/pettrack/console/client"
	"github.com/pettrack/console/console"
	"github.com/pettrack/console/model"
	"github.com/pettrack/console/session"
)

type testConfig struct{}

func (testConfig) GetAppName() string  { return "test-console" }
func (testConfig) GetViewsDir() string { return "./views" }
func (testConfig) IsDebug() bool       { return false }

func testDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	return bun.NewDB(sqldb, sqlitedialect.New())
}

func mintToken(t *testing.T, role model.UserRole) string {
	t.Helper()

	claims := &session.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UID:      "user-1",
		UserRole: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

// fakeAPI answers every collection read with an empty list
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestConsole(t *testing.T) (*console.Console, *session.Store) {
	t.Helper()

	ctx := context.Background()
	store, err := session.NewStore(ctx, testDB(t))
	require.NoError(t, err)

	api := fakeAPI(t)
	base := client.NewBaseClient(api.URL, client.TokenSourceFunc(func() string {
		return store.Current().AccessToken
	}))

	services := console.NewServices(base)
	manager := session.NewManager(store, services.Auth)

	return console.New(testConfig{}, manager, services), store
}

func login(t *testing.T, store *session.Store, role model.UserRole) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), mintToken(t, role), &model.User{
		Name:  "Operadora",
		Email: "op@example.com",
		Role:  role,
	}))
}

func TestConsoleRouting(t *testing.T) {
	t.Run("root redirects to the landing page", func(t *testing.T) {
		ui, _ := newTestConsole(t)

		resp, err := ui.App().Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/home", resp.Header.Get("Location"))
	})

	t.Run("protected pages send anonymous visitors to login", func(t *testing.T) {
		ui, _ := newTestConsole(t)

		for _, path := range []string{"/home", "/animals", "/devices", "/perfil"} {
			resp, err := ui.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
			require.NoError(t, err)

			assert.Equal(t, http.StatusFound, resp.StatusCode, path)
			assert.Equal(t, "/login", resp.Header.Get("Location"), path)
		}
	})

	t.Run("login page renders for anonymous visitors", func(t *testing.T) {
		ui, _ := newTestConsole(t)

		resp, err := ui.App().Test(httptest.NewRequest(http.MethodGet, "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("authenticated users are bounced off the login page", func(t *testing.T) {
		ui, store := newTestConsole(t)
		login(t, store, model.RoleUser)

		resp, err := ui.App().Test(httptest.NewRequest(http.MethodGet, "/login", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/home", resp.Header.Get("Location"))
	})

	t.Run("staff can open resource pages", func(t *testing.T) {
		ui, store := newTestConsole(t)
		login(t, store, model.RoleUser)

		for _, path := range []string{"/home", "/animals", "/species", "/telemetries"} {
			resp, err := ui.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
	})

	t.Run("non-admins are kept out of user management", func(t *testing.T) {
		ui, store := newTestConsole(t)
		login(t, store, model.RoleEditor)

		resp, err := ui.App().Test(httptest.NewRequest(http.MethodGet, "/users", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))
	})

	t.Run("admins can open user management", func(t *testing.T) {
		ui, store := newTestConsole(t)
		login(t, store, model.RoleAdmin)

		resp, err := ui.App().Test(httptest.NewRequest(http.MethodGet, "/users", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("an expired session is treated as anonymous", func(t *testing.T) {
		ui, store := newTestConsole(t)

		claims := &session.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
			UserRole: model.RoleAdmin,
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
		require.NoError(t, err)

		require.NoError(t, store.Save(context.Background(), expired, &model.User{Role: model.RoleAdmin}))

		resp, err := ui.App().Test(httptest.NewRequest(http.MethodGet, "/home", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))

		// the guard cleaned up the expired session as a side effect
		assert.True(t, store.Current().Empty())
	})

	t.Run("unknown routes render the missing page", func(t *testing.T) {
		ui, store := newTestConsole(t)
		login(t, store, model.RoleUser)

		resp, err := ui.App().Test(httptest.NewRequest(http.MethodGet, "/billing", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestLoginPostFlashesSuccess(t *testing.T) {
	ctx := context.Background()
	store, err := session.NewStore(ctx, testDB(t))
	require.NoError(t, err)

	token := mintToken(t, model.RoleUser)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			json.NewEncoder(w).Encode(session.LoginResult{
				AccessToken: token,
				User:        &model.User{Name: "Operadora", Email: "op@example.com", Role: model.RoleUser},
			})
			return
		}
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	t.Cleanup(api.Close)

	base := client.NewBaseClient(api.URL, client.TokenSourceFunc(func() string {
		return store.Current().AccessToken
	}))
	services := console.NewServices(base)
	manager := session.NewManager(store, services.Auth)

	auth := console.NewAuthController(
		console.WithSession(manager),
		console.WithUsers(services.Users),
	)

	app := fiber.New()
	app.Post("/login", auth.LoginPost)

	form := url.Values{"email": {"op@example.com"}, "password": {"sekret-pass"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/home", resp.Header.Get("Location"))
	assert.False(t, store.Current().Empty())

	var raw string
	for _, ck := range resp.Cookies() {
		if ck.Name == "console_flash" {
			raw = ck.Value
		}
	}
	require.NotEmpty(t, raw, "expected a flash cookie on successful login")

	payload, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)

	flash := console.Flash{}
	require.NoError(t, json.Unmarshal(payload, &flash))
	assert.Equal(t, "success", flash.Kind)
	assert.Equal(t, "Login realizado com sucesso!", flash.Message)
}

func TestLogout(t *testing.T) {
	ui, store := newTestConsole(t)
	login(t, store, model.RoleUser)

	resp, err := ui.App().Test(httptest.NewRequest(http.MethodGet, "/logout", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.True(t, store.Current().Empty())
}
