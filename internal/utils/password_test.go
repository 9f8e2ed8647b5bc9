package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))
}

func TestHashPassword_TooShort(t *testing.T) {
	hash, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Empty(t, hash)
}
