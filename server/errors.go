package server

import "github.com/goliatone/go-errors"

const (
	TextCodeInvalidCredentials = "server_invalid_credentials"
	TextCodeTokenExpired       = "server_token_expired"
	TextCodeTokenMalformed     = "server_token_malformed"
	TextCodeDuplicateEmail     = "server_duplicate_email"
)

// ErrInvalidCredentials covers both unknown emails and bad passwords so
// login responses never reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a presented token is past its exp claim.
var ErrTokenExpired = errors.New("token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a presented token fails to parse or verify.
var ErrTokenMalformed = errors.New("token malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrDuplicateEmail is returned when registering an email that already
// has an account.
var ErrDuplicateEmail = errors.New("email already registered", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// ErrNoEmptyString rejects blank passwords before hashing
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is returned when a password does not
// match its stored hash.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)
