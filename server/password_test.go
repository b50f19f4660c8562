package server_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pettrack/console/server"
)

func TestPasswordHasher(t *testing.T) {
	hasher := server.NewPasswordHasher(bcrypt.MinCost)

	t.Run("hash and compare round-trip", func(t *testing.T) {
		hash, err := hasher.Hash("sekret-pass")
		require.NoError(t, err)
		require.NotEmpty(t, hash)

		assert.NoError(t, hasher.Compare("sekret-pass", hash))
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.ErrorIs(t, err, server.ErrNoEmptyString)
	})

	t.Run("wrong password yields the mismatch error", func(t *testing.T) {
		hash, err := hasher.Hash("sekret-pass")
		require.NoError(t, err)

		assert.ErrorIs(t, hasher.Compare("other-pass", hash), server.ErrMismatchedHashAndPassword)
	})

	t.Run("verifies hashes minted at another cost", func(t *testing.T) {
		expensive := server.NewPasswordHasher(bcrypt.DefaultCost)
		hash, err := expensive.Hash("sekret-pass")
		require.NoError(t, err)

		assert.NoError(t, hasher.Compare("sekret-pass", hash))
	})

	t.Run("random hash is usable and unguessable", func(t *testing.T) {
		assert.NotEqual(t, hasher.RandomHash(), hasher.RandomHash())
	})
}
