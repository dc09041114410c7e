package utils

import (
	"testing"
	"time"

	"itufk/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken_RoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("member-1", "a@club.org", time.Hour)
	require.NoError(t, err)

	id, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "member-1", id)
}

func TestExtractIDFromToken_Rejects(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	expired, err := GenerateToken("member-1", "a@club.org", -time.Minute)
	require.NoError(t, err)
	_, err = ExtractIDFromToken(expired)
	assert.Error(t, err)

	config.AppConfig.JWTSecret = "other-secret"
	forged, err := GenerateToken("member-1", "a@club.org", time.Hour)
	require.NoError(t, err)
	config.AppConfig.JWTSecret = "test-secret"
	_, err = ExtractIDFromToken(forged)
	assert.Error(t, err)

	_, err = ExtractIDFromToken("not-a-token")
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

func TestParseToken_Claims(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("member-2", "b@club.org", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "member-2", claims.Subject)
	assert.Equal(t, "b@club.org", claims.Email)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestExpiredTokenSubject(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	expired, err := GenerateToken("member-3", "c@club.org", -time.Minute)
	require.NoError(t, err)
	id, ok := ExpiredTokenSubject(expired)
	assert.True(t, ok)
	assert.Equal(t, "member-3", id)

	live, err := GenerateToken("member-3", "c@club.org", time.Hour)
	require.NoError(t, err)
	_, ok = ExpiredTokenSubject(live)
	assert.False(t, ok, "a live token is not expired")

	config.AppConfig.JWTSecret = "other-secret"
	forged, err := GenerateToken("member-3", "c@club.org", -time.Minute)
	require.NoError(t, err)
	config.AppConfig.JWTSecret = "test-secret"
	_, ok = ExpiredTokenSubject(forged)
	assert.False(t, ok, "an expired token with a bad signature is rejected")

	_, ok = ExpiredTokenSubject("not-a-token")
	assert.False(t, ok)
}
