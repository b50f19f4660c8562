// Package server hosts the platform REST API the console talks to. In
// standalone deployments it runs embedded in the same process; the
// console still reaches it over HTTP so the wire contract stays honest.
package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/uptrace/bun"

	"github.com/pettrack/console/middleware/jwtware"
	"github.com/pettrack/console/model"
)

// ClaimsContextKey is where validated token claims are stashed
const ClaimsContextKey = "user"

// Config is the configuration surface the server needs
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
}

type Server struct {
	app       *fiber.App
	db        *bun.DB
	repos     *Repos
	tokens    *TokenService
	passwords PasswordHasher
	logger    Logger
}

type Option func(*Server)

func WithLogger(logger Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithPasswordCost overrides the bcrypt cost used for new hashes
func WithPasswordCost(cost int) Option {
	return func(s *Server) {
		s.passwords = NewPasswordHasher(cost)
	}
}

// New assembles the API: repositories, token service, routes
func New(db *bun.DB, cfg Config, opts ...Option) *Server {
	s := &Server{
		db:        db,
		repos:     NewRepos(db),
		passwords: NewPasswordHasher(0),
		logger:    defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.tokens = NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenExpiration(),
		cfg.GetIssuer(),
		jwt.ClaimStrings(cfg.GetAudience()),
		s.logger,
	)

	s.app = fiber.New(fiber.Config{
		AppName:               "pettrack-api",
		DisableStartupMessage: true,
	})

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Post("/auth/login", s.LoginHandler)
	s.app.Post("/auth/register", s.RegisterHandler)

	s.app.Use(jwtware.New(jwtware.Config{
		TokenValidator: s.tokens,
		ContextKey:     ClaimsContextKey,
	}))

	s.app.Get("/users/me", s.MeShow)
	s.app.Put("/users/me", s.MeUpdate)

	registerResource(s.app, "/animals", s.repos.Animals, s.logger)
	registerResource(s.app, "/species", s.repos.Species, s.logger)
	registerResource(s.app, "/breeds", s.repos.Breeds, s.logger)
	registerResource(s.app, "/devices", s.repos.Devices, s.logger)
	registerResource(s.app, "/notifications", s.repos.Notifications, s.logger)
	registerResource(s.app, "/telemetries", s.repos.Telemetries, s.logger)

	// account management is admin territory
	admin := s.app.Group("/users", requireRole(model.RoleAdmin))
	admin.Get("/", func(c *fiber.Ctx) error {
		records, err := s.repos.Users.List(c.Context())
		if err != nil {
			s.logger.Error("list /users: %v", err)
			return internalError(c)
		}
		return c.JSON(records)
	})
	admin.Get("/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, "invalid id")
		}
		record, err := s.repos.Users.GetByID(c.Context(), id)
		if err != nil {
			return userRepoError(c, s.logger, err)
		}
		return c.JSON(record)
	})
	admin.Post("/", s.UserCreateHandler)
	admin.Put("/:id", s.UserUpdateHandler)
	admin.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, "invalid id")
		}
		if err := s.repos.Users.DeleteByID(c.Context(), id); err != nil {
			return userRepoError(c, s.logger, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// requireRole gates a route group on an exact role. It runs after the
// bearer middleware, so claims are already validated.
func requireRole(role model.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := jwtware.ClaimsFromContext(c, ClaimsContextKey)
		if !ok || !claims.HasRole(role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "access denied",
			})
		}
		return c.Next()
	}
}

// Repos exposes the repositories for seeding and tests
func (s *Server) Repos() *Repos {
	return s.repos
}

// Tokens exposes the token service for seeding and tests
func (s *Server) Tokens() *TokenService {
	return s.tokens
}

// Passwords exposes the password hasher for seeding and tests
func (s *Server) Passwords() PasswordHasher {
	return s.passwords
}

// App exposes the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves the API on the given address
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests before the deadline
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
