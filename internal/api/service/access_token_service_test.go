package service

import (
	"ctchen222/Chord-Dictionary/internal/api/models"
	"ctchen222/Chord-Dictionary/internal/apperr"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_IssueAndParse(t *testing.T) {
	clock := newFakeClock()
	svc := NewAccessTokenService("test-secret", time.Hour).(*accessTokenService)
	svc.now = clock.Now

	token, expiresAt, err := svc.Issue(&models.User{ID: 42, Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.True(t, expiresAt.Equal(clock.Now().Add(time.Hour)))

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)

	clock.Advance(time.Hour + time.Second)
	_, err = svc.Parse(token)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessToken_RejectsForeignTokens(t *testing.T) {
	svc := NewAccessTokenService("test-secret", time.Hour)
	other := NewAccessTokenService("other-secret", time.Hour)

	foreign, _, err := other.Issue(&models.User{ID: 1})
	require.NoError(t, err)
	_, err = svc.Parse(foreign)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Parse(unsigned)
	assert.Error(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "1"})
	signed, err := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Parse(signed)
	assert.Error(t, err, "expiry is required")

	_, err = svc.Parse("not-a-jwt")
	assert.Error(t, err)
}
