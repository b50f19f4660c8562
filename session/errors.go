package session

import "github.com/goliatone/go-errors"

const (
	TextCodeLoginFailed        = "auth_login_failed"
	TextCodeRegistrationFailed = "auth_registration_failed"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeTokenUndecodable   = "auth_token_undecodable"
)

// ErrLoginFailed is the single failure surfaced to the operator for any
// login error; the specific classification is only logged.
var ErrLoginFailed = errors.New("login failed", errors.CategoryAuth).
	WithTextCode(TextCodeLoginFailed).
	WithCode(errors.CodeUnauthorized)

// ErrRegistrationFailed is the single failure surfaced for registration errors.
var ErrRegistrationFailed = errors.New("registration failed", errors.CategoryAuth).
	WithTextCode(TextCodeRegistrationFailed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a token's exp claim is already in the past.
var ErrTokenExpired = errors.New("token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenUndecodable is returned when a token payload cannot be decoded.
var ErrTokenUndecodable = errors.New("unable to decode token claims", errors.CategoryAuth).
	WithTextCode(TextCodeTokenUndecodable).
	WithCode(errors.CodeUnauthorized)
