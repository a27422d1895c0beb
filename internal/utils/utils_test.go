package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("secret", "abc-123", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	sid, err := ParseSessionToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", sid)
}

func TestParseSessionTokenRejects(t *testing.T) {
	good, err := NewSessionToken("secret", "abc", time.Hour)
	require.NoError(t, err)
	expired, err := NewSessionToken("secret", "abc", -time.Minute)
	require.NoError(t, err)
	noSid, err := NewSessionToken("secret", "", time.Hour)
	require.NoError(t, err)

	cases := map[string]struct{ secret, raw string }{
		"wrong secret": {"other", good.Token},
		"expired":      {"secret", expired.Token},
		"empty sid":    {"secret", noSid.Token},
		"garbage":      {"secret", "not-a-jwt"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSessionToken(tc.secret, tc.raw)
			assert.ErrorIs(t, err, ErrInvalidSessionToken)
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("", ""))
	assert.False(t, VerifyPassword(hash, ""))

	_, err = HashPassword(strings.Repeat("a", 73), bcrypt.MinCost)
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}
