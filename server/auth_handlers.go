package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-repository-bun"

	"github.com/pettrack/console/session"
)

// LoginHandler authenticates credentials and mints an access token.
// Unknown emails and bad passwords share one response so the endpoint
// does not leak which accounts exist.
func (s *Server) LoginHandler(c *fiber.Ctx) error {
	payload := session.LoginPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := s.repos.Users.GetByEmail(c.Context(), payload.Email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return unauthorized(c, ErrInvalidCredentials.Message)
		}
		s.logger.Error("login: lookup %s: %v", payload.Email, err)
		return internalError(c)
	}

	if err := s.passwords.Compare(payload.Password, user.PasswordHash); err != nil {
		if trackErr := s.repos.Users.TrackAttemptedLogin(c.Context(), user); trackErr != nil {
			s.logger.Error("login: track attempt for %s: %v", user.Email, trackErr)
		}
		return unauthorized(c, ErrInvalidCredentials.Message)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.logger.Error("login: mint token for %s: %v", user.Email, err)
		return internalError(c)
	}

	if err := s.repos.Users.TrackSuccessfulLogin(c.Context(), user); err != nil {
		s.logger.Error("login: track success for %s: %v", user.Email, err)
	}

	return c.JSON(session.LoginResult{
		AccessToken: token,
		User:        user,
	})
}

// RegisterHandler creates a staff account. New accounts always start
// with the base role; promotions go through the admin endpoints.
func (s *Server) RegisterHandler(c *fiber.Ctx) error {
	payload := session.RegisterPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := s.repos.Users.GetByEmail(c.Context(), payload.Email); err == nil {
		return conflict(c, ErrDuplicateEmail.Message)
	} else if !repository.IsRecordNotFound(err) {
		s.logger.Error("register: lookup %s: %v", payload.Email, err)
		return internalError(c)
	}

	hash, err := s.passwords.Hash(payload.Password)
	if err != nil {
		return badRequest(c, "invalid password")
	}

	user, err := s.repos.Users.Register(c.Context(), userFromRegistration(payload, hash))
	if err != nil {
		s.logger.Error("register: create %s: %v", payload.Email, err)
		return conflict(c, ErrDuplicateEmail.Message)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}
