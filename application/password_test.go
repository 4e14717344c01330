package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("password123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("password124", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	first, err := HashPassword("password123")
	require.NoError(t, err)

	second, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := VerifyPassword("password123", "plaintext")
	require.Error(t, err)

	_, err = VerifyPassword("password123", "$bcrypt$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA")
	require.Error(t, err)
}
