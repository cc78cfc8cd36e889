package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/scribe-go/apperror"
	"github.com/user/scribe-go/config"
	"github.com/user/scribe-go/users"
)

// memoryUserStore is an in-memory users.Store for exercising the service
// without a database.
type memoryUserStore struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]*users.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{byName: make(map[string]*users.User)}
}

func (s *memoryUserStore) FindByUsername(_ context.Context, username string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byName[username]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("user %q not found", username), nil)
	}
	copied := *user
	return &copied, nil
}

func (s *memoryUserStore) Insert(_ context.Context, username, passwordHash string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[username]; ok {
		return nil, apperror.NewConflictError("username already exists", nil)
	}
	s.nextID++
	user := &users.User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         "user",
		CreatedAt:    time.Now(),
	}
	s.byName[username] = user
	copied := *user
	return &copied, nil
}

func newTestService(store users.Store) *Service {
	cfg := config.AuthConfig{JWTSecret: "service-test-secret", TokenLifetime: time.Hour}
	return NewService(store, NewHasher(), cfg)
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	t.Parallel()

	store := newMemoryUserStore()
	svc := newTestService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "user", user.Role)

	stored := store.byName["alice"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "secret123")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemoryUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Username: "alice", Password: "different456"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestLoginIssuesDecodableToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemoryUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := ParseToken(resp.Token, []byte("service-test-secret"))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, "user", claims.Role)
}

// Login failures for an unknown username and for a wrong password must be
// indistinguishable, otherwise the endpoint leaks which usernames exist.
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemoryUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, LoginRequest{Username: "alice", Password: "nope"})
	_, unknownUser := svc.Login(ctx, LoginRequest{Username: "nobody", Password: "nope"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)

	first, ok := apperror.FromError(wrongPassword)
	require.True(t, ok)
	second, ok := apperror.FromError(unknownUser)
	require.True(t, ok)
	assert.Equal(t, first.StatusCode(), second.StatusCode())
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, first.ToResponse(), second.ToResponse())
}

func TestResolveIdentity(t *testing.T) {
	t.Parallel()

	store := newMemoryUserStore()
	svc := newTestService(store)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	claims := &Claims{Role: "user"}
	claims.Subject = "alice"
	user, err := ResolveIdentity(ctx, store, claims)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// A token naming a user deleted after issuance is no longer a valid
	// credential.
	claims.Subject = "ghost"
	_, err = ResolveIdentity(ctx, store, claims)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthenticationError(err))

	_, err = ResolveIdentity(ctx, store, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthenticationError(err))
}

func TestCheckOwnership(t *testing.T) {
	t.Parallel()

	require.NoError(t, CheckOwnership(7, 7, "update", "post"))

	err := CheckOwnership(7, 8, "delete", "post")
	require.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
	assert.Contains(t, err.Error(), "not allowed to delete this post")
}
