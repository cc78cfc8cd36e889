package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token parse failures, distinguished for observability. The gate collapses
// all of them into one authentication failure before anything reaches the
// client.
var (
	// ErrTokenMalformed means the token is not a structurally valid JWT.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignature means the signature does not match the secret.
	ErrTokenSignature = errors.New("token signature is invalid")
	// ErrTokenExpired means the token's exp claim is in the past.
	ErrTokenExpired = errors.New("token has expired")
)

// Claims is the identity payload carried inside a token: the subject is the
// username, the role is copied from the user row at login time and is not
// re-checked against current user state.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Username returns the token subject.
func (c *Claims) Username() string {
	return c.Subject
}

// IssueToken signs a token for the given identity. Expiry is absolute:
// now + lifetime. Tokens are stateless and valid until then; there is no
// revocation mechanism.
func IssueToken(username, role string, secret []byte, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies the signature and expiry of a token string and returns
// its claims. Only HMAC signing is accepted; a token claiming any other
// algorithm fails as a signature error.
func ParseToken(raw string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
	}
	if !token.Valid {
		return nil, ErrTokenSignature
	}
	return claims, nil
}
