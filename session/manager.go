package session

import (
	"context"
	"errors"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"

	"github.com/pettrack/console/model"
)

// LoginPayload carries the credentials submitted on the login page
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

// RegisterPayload carries the attributes for a new staff account
type RegisterPayload struct {
	Email           string `form:"email" json:"email"`
	Name            string `form:"name" json:"name"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirmPassword"`
}

// Validate will run validation rules
func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(
			&p.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(p.Password)),
		),
	)
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}

// LoginResult is what the auth API returns on a successful login
type LoginResult struct {
	AccessToken string      `json:"accessToken"`
	User        *model.User `json:"user"`
}

// AuthService is the external auth API the manager orchestrates against
type AuthService interface {
	Login(ctx context.Context, payload LoginPayload) (*LoginResult, error)
	Register(ctx context.Context, payload RegisterPayload) error
}

// Manager owns the decision logic for authentication validity and
// orchestrates login and registration against the auth API. All session
// mutations flow through here; guards and pages only read.
type Manager struct {
	store  *Store
	api    AuthService
	logger Logger

	mu        sync.Mutex
	listeners []func(Session)
}

// NewManager returns a new session Manager
func NewManager(store *Store, api AuthService) *Manager {
	return &Manager{
		store:  store,
		api:    api,
		logger: defLogger{},
	}
}

func (m *Manager) WithLogger(logger Logger) *Manager {
	m.logger = logger
	return m
}

// OnChange registers a listener invoked after every session mutation
func (m *Manager) OnChange(fn func(Session)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Current returns the session as stored, without side effects
func (m *Manager) Current() Session {
	return m.store.Current()
}

// IsAuthenticated is true iff a token is present and not expired. The
// expiry check runs on every call since wall clock time advances.
func (m *Manager) IsAuthenticated() bool {
	s := m.store.Current()
	return !s.Empty() && !IsExpired(s.AccessToken)
}

// HasRole reports whether the session user carries the given role. It
// is a pure query; expired sessions are cleaned up by EnforceValidity,
// never by a read.
func (m *Manager) HasRole(role model.UserRole) bool {
	return m.store.Current().Role() == role
}

// IsAdmin reports whether the session user is an administrator
func (m *Manager) IsAdmin() bool {
	return m.HasRole(model.RoleAdmin)
}

// EnforceValidity force-logs-out when the stored token is observed to
// be expired. Guards invoke it on every navigation so an expired
// session is cleaned up without waiting for a failed request.
func (m *Manager) EnforceValidity(ctx context.Context) {
	s := m.store.Current()
	if s.Empty() || !IsExpired(s.AccessToken) {
		return
	}

	m.logger.Info("session token expired, forcing logout")
	if err := m.Logout(ctx); err != nil {
		m.logger.Error("forced logout: %v", err)
	}
}

// Login authenticates against the auth API and commits the session. A
// returned token that is already expired is rejected without touching
// the store, guarding against clock skew or a misissued token.
func (m *Manager) Login(ctx context.Context, payload LoginPayload) error {
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	result, err := m.api.Login(ctx, payload)
	if err != nil {
		m.logAuthFailure("login", err)
		return ErrLoginFailed
	}

	if result == nil || result.AccessToken == "" || result.User == nil {
		m.logger.Error("login: auth API returned an incomplete result")
		return ErrLoginFailed
	}

	if IsExpired(result.AccessToken) {
		m.logger.Warn("login: auth API returned an expired token, not committing")
		return ErrTokenExpired
	}

	if err := m.store.Save(ctx, result.AccessToken, result.User); err != nil {
		m.logger.Error("login: persist session: %v", err)
		return ErrLoginFailed
	}

	m.logger.Info("login ok for %s", result.User.Email)
	m.notify()
	return nil
}

// Register creates an account through the auth API. It does not
// auto-login; the caller sends the operator to the login page.
func (m *Manager) Register(ctx context.Context, payload RegisterPayload) error {
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	if err := m.api.Register(ctx, payload); err != nil {
		m.logAuthFailure("register", err)
		return ErrRegistrationFailed
	}

	m.logger.Info("registration ok for %s", payload.Email)
	return nil
}

// Logout clears the session. It always succeeds from the caller's
// perspective and is idempotent: logging out twice leaves the same
// empty session.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error("logout: clear persisted session: %v", err)
	}

	m.notify()
	return nil
}

// SaveProfile replaces the cached user profile wholesale, keeping the
// current token. Used after a profile edit is confirmed by the API.
func (m *Manager) SaveProfile(ctx context.Context, user *model.User) error {
	s := m.store.Current()
	if s.Empty() {
		return ErrLoginFailed
	}

	if err := m.store.Save(ctx, s.AccessToken, user); err != nil {
		return err
	}

	m.notify()
	return nil
}

func (m *Manager) notify() {
	m.mu.Lock()
	listeners := make([]func(Session), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	current := m.store.Current()
	for _, fn := range listeners {
		fn(current)
	}
}

// logAuthFailure classifies the failure for the logs only; callers
// surface a single generic message per operation to the operator.
func (m *Manager) logAuthFailure(op string, err error) {
	var rich *goerrors.Error
	if errors.As(err, &rich) {
		m.logger.Error("%s failed: category=%s code=%s: %s", op, rich.Category, rich.TextCode, rich.Message)
		return
	}
	m.logger.Error("%s failed: %v", op, err)
}
