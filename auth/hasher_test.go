package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasherHashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	ctx := context.Background()

	digest, err := h.Hash(ctx, "correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotContains(t, digest, "correct horse")

	match, err := h.Verify(ctx, "correct horse battery staple", digest)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = h.Verify(ctx, "wrong password", digest)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestHasherHashIsSalted(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	ctx := context.Background()

	first, err := h.Hash(ctx, "secret123")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasherVerifyCorruptDigest(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	_, err := h.Verify(context.Background(), "secret123", "not-a-bcrypt-digest")
	require.Error(t, err)
}

func TestHasherCancelledContext(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "secret123")
	require.ErrorIs(t, err, context.Canceled)
}
