package server

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/pettrack/console/middleware/jwtware"
	"github.com/pettrack/console/model"
	"github.com/pettrack/console/session"
)

// ProfilePayload carries the fields an operator may edit on their own
// account. Role and password changes go through dedicated flows.
type ProfilePayload struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
	Phone string `json:"phone" form:"phone"`
}

// Validate will run validation rules
func (p ProfilePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&p.Phone, validation.By(model.ValidateOptionalPhone)),
	)
}

func userFromRegistration(payload session.RegisterPayload, passwordHash string) *model.User {
	return &model.User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: passwordHash,
	}
}

// currentUser loads the account behind the validated token claims
func (s *Server) currentUser(c *fiber.Ctx) (*model.User, error) {
	claims, ok := jwtware.ClaimsFromContext(c, ClaimsContextKey)
	if !ok {
		return nil, ErrTokenMalformed
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return nil, ErrTokenMalformed
	}

	return s.repos.Users.GetByID(c.Context(), id)
}

// MeShow returns the authenticated user's own profile
func (s *Server) MeShow(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFound(c, "account no longer exists")
		}
		return unauthorized(c, "invalid token")
	}

	return c.JSON(user)
}

// MeUpdate replaces the editable fields of the authenticated user's
// profile and returns the stored copy.
func (s *Server) MeUpdate(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFound(c, "account no longer exists")
		}
		return unauthorized(c, "invalid token")
	}

	payload := ProfilePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	user.Name = payload.Name
	user.Email = payload.Email
	user.Phone = payload.Phone

	updated, err := s.repos.Users.UpdateByID(c.Context(), user.ID, user)
	if err != nil {
		s.logger.Error("profile update for %s: %v", user.Email, err)
		return internalError(c)
	}

	return c.JSON(updated)
}

// UserCreateHandler lets an administrator provision an account with an
// explicit role. The account starts with a random password; the new
// user resets it out of band.
func (s *Server) UserCreateHandler(c *fiber.Ctx) error {
	record := &model.User{}
	if err := c.BodyParser(record); err != nil {
		return badRequest(c, "invalid request body")
	}

	if record.Role == "" {
		record.Role = model.RoleUser
	}

	if err := record.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if record.PasswordHash == "" {
		record.PasswordHash = s.passwords.RandomHash()
	}

	user, err := s.repos.Users.Register(c.Context(), record)
	if err != nil {
		return conflict(c, ErrDuplicateEmail.Message)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// UserUpdateHandler lets an administrator edit any account, including
// its role.
func (s *Server) UserUpdateHandler(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid id")
	}

	existing, err := s.repos.Users.GetByID(c.Context(), id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFound(c, "record not found")
		}
		return internalError(c)
	}

	payload := &model.User{}
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	existing.Name = payload.Name
	existing.Email = payload.Email
	existing.Phone = payload.Phone
	if payload.Role != "" {
		existing.Role = payload.Role
	}

	if err := existing.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := s.repos.Users.UpdateByID(c.Context(), id, existing)
	if err != nil {
		s.logger.Error("user update %s: %v", id, err)
		return internalError(c)
	}

	return c.JSON(updated)
}
