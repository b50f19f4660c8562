package server

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// defaultPasswordCost trades login latency for brute-force resistance.
// Override per deployment with WithPasswordCost.
const defaultPasswordCost = 14

// PasswordHasher hashes and verifies account passwords with bcrypt at a
// fixed cost. The zero value is unusable; build one with NewPasswordHasher.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher clamps cost into bcrypt's supported range. A cost
// of 0 or below selects the default.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost <= 0 {
		cost = defaultPasswordCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return PasswordHasher{cost: cost}
}

// Hash generates a password hash
func (p PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	return string(h), err
}

// Compare validates the given cleartext password against the stored
// hash. Cost is read from the hash itself, so rehashing after a cost
// change is not required for verification.
func (p PasswordHasher) Compare(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}

// RandomHash returns the hash of an unguessable throwaway password, for
// provisioned accounts that must set their own on first login.
func (p PasswordHasher) RandomHash() string {
	pwd := uuid.New()

	h, err := p.Hash(pwd.String())
	if err != nil {
		return p.RandomHash()
	}

	return h
}
