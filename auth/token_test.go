package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	tok, err := IssueToken("alice", "user", secret, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, "user", claims.Role)

	exp := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)
}

func TestParseTokenExpired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	tok, err := IssueToken("alice", "user", secret, -time.Second)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken("alice", "user", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong-secret"))
	require.ErrorIs(t, err, ErrTokenSignature)
}

func TestParseTokenMalformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"))
	require.ErrorIs(t, err, ErrTokenMalformed)

	_, err = ParseToken("", []byte("k"))
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseTokenRejectsNonHMACAlg(t *testing.T) {
	t.Parallel()

	// A token claiming "none" must never validate, whatever the payload.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(raw, []byte("test-secret"))
	require.Error(t, err)
}
