// Package auth provides JWT issuance/verification, bcrypt password hashing,
// and the bearer-token middleware that guards mutating routes.
//
// The token is stateless: the only claim that matters is the user's email,
// carried in the standard "sub" claim. Validity is purely a function of the
// HMAC signature and the expiry at verification time — nothing is persisted
// server-side and there is no revocation list.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is the access-token lifetime. After expiry the client must log in
// again; there are no refresh tokens.
const tokenTTL = time.Hour

const issuer = "codewizard"

// TokenService signs and verifies the access tokens issued at login.
// The HMAC secret is process-wide configuration loaded once at startup;
// rotation is out of scope.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds jwt.RegisteredClaims; the user's email travels in "sub".
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates a signed HS256 token carrying the user's email, valid for
// one hour.
func (s *TokenService) Issue(email string) (string, error) {
	return s.IssueWithDuration(email, tokenTTL)
}

// IssueWithDuration creates a token with a custom expiry. Used by tests to
// produce already-expired tokens.
func (s *TokenService) IssueWithDuration(email string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token string and returns the embedded email
// claim. It rejects bad signatures, expired tokens, wrong issuers, and any
// algorithm other than HS256 (jwt.WithValidMethods closes the algorithm
// confusion hole).
func (s *TokenService) Verify(tokenStr string) (string, error) {
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
		jwt.WithIssuer(issuer),
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
