// Package auth provides JWT issuing/validation, password hashing, and the
// Bearer-token middleware for the Career Compass API.
//
// AUTHENTICATION FLOW:
//  1. POST /api/auth/register or /api/auth/login → server issues a JWT
//  2. The client stores the token itself alongside the account email and
//     sends it on every authenticated request as
//     "Authorization: Bearer <token>"
//  3. Middleware validates the JWT and puts the userID in the request context
//  4. Any 401 response makes the client drop its session entirely
//
// The token is stateless: the server keeps no session table. There is no
// refresh or revocation — a token is trusted until it expires or the
// signature check fails.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer names this application in the "iss" claim. Validation pins it
// so a token minted by another service sharing the secret is rejected.
const tokenIssuer = "orbitai"

// tokenLifetime is how long an access token stays valid. The client has no
// refresh mechanism, so this is a full working-day session rather than the
// minutes-scale lifetime you would pair with refresh tokens.
const tokenLifetime = 24 * time.Hour

// TokenService signs and verifies the HS256 access tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given HMAC secret.
// The secret should be at least 32 bytes of random data in production
// (JWT_SECRET=$(openssl rand -hex 32)); anything under 16 is refused.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. The internal user ID goes into "sub" (Subject),
// the standard claim for who the token belongs to.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a new access token for the given userID.
func (s *TokenService) Generate(userID string) (string, error) {
	return s.GenerateWithDuration(userID, tokenLifetime)
}

// GenerateWithDuration creates a token with a custom expiry. Tests use this
// to mint already-expired tokens without sleeping.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string and returns the userID from the
// "sub" claim.
//
// The signing method is pinned to HS256 via WithValidMethods — without it,
// a token claiming alg "none" could slip past signature verification
// (the classic algorithm-confusion attack).
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
