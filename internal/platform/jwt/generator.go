package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: malformed encoding,
// bad signature, unexpected algorithm, or an expired token. Callers must not
// distinguish between them in responses.
var ErrInvalidToken = errors.New("invalid token")

// Generator defines the interface for access token issuance.
type Generator interface {
	// GenerateToken creates a signed token whose subject is the given email.
	GenerateToken(subject string) (string, error)
}

// Verifier defines the interface for access token verification.
type Verifier interface {
	// VerifyToken checks the token's signature and expiry and returns the subject.
	VerifyToken(token string) (string, error)
}

// tokenService implements both Generator and Verifier with an HMAC secret
// loaded once at startup. Tokens are stateless: there is no revocation, a
// token stays valid until its expiry regardless of later account changes.
type tokenService struct {
	secret     []byte
	expiration time.Duration
}

// NewTokenService creates a token service with the provided secret and expiration duration.
func NewTokenService(secret string, expiration time.Duration) *tokenService {
	return &tokenService{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed HS256 token with standard claims.
func (g *tokenService) GenerateToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(g.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken parses and validates a token, returning its subject claim.
// jwt.Parse rejects expired tokens via the registered exp claim.
func (g *tokenService) VerifyToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
