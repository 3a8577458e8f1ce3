package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, ttl time.Duration, secret string) TokenService {
	t.Helper()
	svc, err := NewTokenService(ttl, "shiftwave", "shiftwave-api", secret)
	require.NoError(t, err)
	return svc
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, "test-secret-key-for-tokens")

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestTokenIDsAreUnique(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, "test-secret-key-for-tokens")

	first, err := svc.GenerateToken(1)
	require.NoError(t, err)
	second, err := svc.GenerateToken(1)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	firstClaims, err := svc.ValidateToken(first)
	require.NoError(t, err)
	secondClaims, err := svc.ValidateToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, firstClaims.TokenID, secondClaims.TokenID)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute, "test-secret-key-for-tokens")

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuing := newTestTokenService(t, time.Hour, "issuing-secret")
	validating := newTestTokenService(t, time.Hour, "different-secret")

	token, err := issuing.GenerateToken(42)
	require.NoError(t, err)

	_, err = validating.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestMalformedTokenRejected(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, "test-secret-key-for-tokens")

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", token)
	}
}

func TestTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(time.Hour, "shiftwave", "shiftwave-api", "")
	assert.Error(t, err)
}
