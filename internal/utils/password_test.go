package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("testpassword", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "testpassword", "hash must not embed the plaintext")

	assert.True(t, VerifyPassword(hash, "testpassword"))
	assert.False(t, VerifyPassword(hash, "wrongpassword"))
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	h1, err := HashPassword("testpassword", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("testpassword", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword(h1, "testpassword"))
	assert.True(t, VerifyPassword(h2, "testpassword"))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("", "anything"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "anything"))
}
