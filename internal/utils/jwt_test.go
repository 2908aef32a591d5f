package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("s3cret", time.Hour)

	token, err := issuer.GenerateJWT("alice")
	require.NoError(t, err)

	subject, err := issuer.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenCarriesIssuedAtAndExpiry(t *testing.T) {
	issuer := NewTokenIssuer("s3cret", 90*time.Minute)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	token, err := issuer.GenerateJWT("alice")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixed.Add(90*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestTokenRejections(t *testing.T) {
	issuer := NewTokenIssuer("s3cret", time.Hour)

	expiredIssuer := NewTokenIssuer("s3cret", time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.GenerateJWT("alice")
	require.NoError(t, err)

	foreign, err := NewTokenIssuer("other", time.Hour).GenerateJWT("alice")
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	cases := map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"wrong method": hs512,
		"no expiry":    noExpiry,
		"no subject":   noSubject,
		"garbage":      "not.a.token",
		"empty":        "",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			subject, err := issuer.ParseJWT(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, subject)
		})
	}
}
