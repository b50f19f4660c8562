// Package console is the server-rendered admin UI. It holds no data of
// its own: every page reads and writes through the platform API, and
// access decisions follow the process-wide session.
package console

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/template/django/v3"

	"github.com/pettrack/console/guard"
	"github.com/pettrack/console/session"
)

// Config is the configuration surface the console needs
type Config interface {
	GetAppName() string
	GetViewsDir() string
	IsDebug() bool
}

type Console struct {
	app     *fiber.App
	session *session.Manager
	logger  Logger
	debug   bool
}

type Option func(*Console)

func WithConsoleLogger(logger Logger) Option {
	return func(c *Console) {
		c.logger = logger
	}
}

// New assembles the console app: view engine, csrf, guards, pages
func New(cfg Config, manager *session.Manager, services *Services, opts ...Option) *Console {
	c := &Console{
		session: manager,
		logger:  defLogger{},
		debug:   cfg.IsDebug(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	engine := django.New(cfg.GetViewsDir(), ".html")
	engine.Reload(cfg.IsDebug())

	c.app = fiber.New(fiber.Config{
		AppName:               cfg.GetAppName(),
		Views:                 engine,
		PassLocalsToViews:     true,
		DisableStartupMessage: !cfg.IsDebug(),
	})

	c.app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf_token",
		ContextKey:     "csrf_token",
		CookieName:     "console_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		Expiration:     1 * time.Hour,
	}))

	c.registerRoutes(services)

	return c
}

func (c *Console) registerRoutes(services *Services) {
	gcfg := guard.DefaultConfig()
	policy := guard.DefaultPolicy()

	auth := NewAuthController(
		WithSession(c.session),
		WithUsers(services.Users),
		WithAuthLogger(c.logger),
		WithDebug(c.debug),
	)

	c.app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Redirect(gcfg.LandingPath, fiber.StatusFound)
	})

	publicOnly := guard.PublicOnly(c.session, gcfg)
	c.app.Get(auth.Routes.Login, publicOnly, auth.LoginShow)
	c.app.Post(auth.Routes.Login, publicOnly, auth.LoginPost)
	c.app.Get(auth.Routes.Register, publicOnly, auth.RegistrationShow)
	c.app.Post(auth.Routes.Register, publicOnly, auth.RegistrationCreate)

	c.app.Get(auth.Routes.Logout, auth.LogOut)
	c.app.Get(auth.Routes.Unauthorized, auth.UnauthorizedShow)

	c.protect(policy, "home", auth.Routes.Home, gcfg).Get("/", auth.HomeShow)

	perfil := c.protect(policy, "perfil", auth.Routes.Perfil, gcfg)
	perfil.Get("/", auth.PerfilShow)
	perfil.Post("/", auth.PerfilPost)

	for _, page := range DefaultPages() {
		rc := NewResourceController(page, services.Page(page.Slug), c.session, c.logger)

		grp := c.protect(policy, page.Slug, "/"+page.Slug, gcfg)
		grp.Get("/", rc.ListShow)
		grp.Get("/new", rc.NewShow)
		grp.Post("/", rc.CreateSubmit)
		grp.Get("/:id/edit", rc.EditShow)
		grp.Post("/:id", rc.UpdateSubmit)
		grp.Post("/:id/delete", rc.DeleteSubmit)
	}

	c.app.Use(auth.MissingShow)
}

// protect builds a route group gated by the policy entry for the given
// segment. Segments missing from the policy deny everyone.
func (c *Console) protect(policy guard.RoutePolicy, segment, prefix string, gcfg guard.Config) fiber.Router {
	roles, _ := policy.AllowedRoles(segment)
	return c.app.Group(prefix, guard.RequireRole(c.session, roles, gcfg))
}

// App exposes the underlying fiber app
func (c *Console) App() *fiber.App {
	return c.app
}

// Listen serves the console on the given address
func (c *Console) Listen(addr string) error {
	return c.app.Listen(addr)
}

// Shutdown drains in-flight requests before the deadline
func (c *Console) Shutdown(ctx context.Context) error {
	return c.app.ShutdownWithContext(ctx)
}
