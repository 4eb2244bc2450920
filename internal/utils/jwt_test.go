package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_GenerateAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("access", "refresh", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	pair, err := issuer.GenerateTokens(userID)
	require.NoError(t, err)

	access, err := issuer.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	got, err := access.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	refresh, err := issuer.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, access.ID, refresh.ID)
	assert.InDelta(t, (24 * time.Hour).Seconds(), refresh.Remaining(time.Now()).Seconds(), 5)
}

func TestTokenIssuer_SecretsAreNotInterchangeable(t *testing.T) {
	issuer := NewTokenIssuer("access", "refresh", time.Minute, time.Hour)

	pair, err := issuer.GenerateTokens(uuid.New())
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err)
	_, err = issuer.VerifyRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("access", "refresh", time.Minute, time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	pair, err := issuer.GenerateTokens(uuid.New())
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}
