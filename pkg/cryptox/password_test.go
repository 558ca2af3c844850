package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "pw1", hash)

	t.Run("correct password verifies", func(t *testing.T) {
		require.NoError(t, VerifyPassword("pw1", hash))
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		require.ErrorIs(t, VerifyPassword("pw2", hash), ErrPasswordMismatch)
	})

	t.Run("hashes are salted", func(t *testing.T) {
		other, err := HashPassword("pw1")
		require.NoError(t, err)
		require.NotEqual(t, hash, other)
	})
}
