package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	t.Run("hash verifies against original password", func(t *testing.T) {
		hash, err := HashPassword("p@ss1234", bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, ComparePassword(hash, "p@ss1234"))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		hash, err := HashPassword("p@ss1234", bcrypt.MinCost)
		require.NoError(t, err)
		require.Error(t, ComparePassword(hash, "wrong"))
	})

	t.Run("same password hashes differently each time", func(t *testing.T) {
		first, err := HashPassword("p@ss1234", bcrypt.MinCost)
		require.NoError(t, err)
		second, err := HashPassword("p@ss1234", bcrypt.MinCost)
		require.NoError(t, err)
		require.NotEqual(t, first, second)
	})
}
