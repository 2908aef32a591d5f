package utils

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrInvalidToken is returned for any token that fails to parse, verify or validate
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies HS256 tokens whose subject is the username
type TokenIssuer struct {
	secret []byte        // HMAC key
	ttl    time.Duration // Lifetime of issued tokens
	now    func() time.Time
}

// NewTokenIssuer creates an issuer; secret must come from configuration, never from code
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateJWT creates a signed token for the given username
func (i *TokenIssuer) GenerateJWT(username string) (string, error) {
	now := i.now()
	// Standard claims only: sub carries the username
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(i.secret)                        // Sign the token with the secret
}

// ParseJWT verifies a token and returns its subject.
// Every failure maps to ErrInvalidToken; no partial identity is ever returned.
func (i *TokenIssuer) ParseJWT(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
