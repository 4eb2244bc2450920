package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "argon2id$v=19$"))

	assert.NoError(t, VerifyPassword(hash, "correct horse"))
	assert.ErrorIs(t, VerifyPassword(hash, "battery staple"), ErrPasswordMismatch)
}

func TestHashPassword_UsesRandomSalt(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	cases := []string{
		"",
		"bcrypt$whatever",
		"argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	}
	for _, c := range cases {
		assert.ErrorIs(t, VerifyPassword(c, "pw"), ErrInvalidHash, c)
	}
}

func TestGenerateOAuthState(t *testing.T) {
	a, err := GenerateOAuthState()
	require.NoError(t, err)
	b, err := GenerateOAuthState()
	require.NoError(t, err)
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
