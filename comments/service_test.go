package comments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/scribe-go/apperror"
	"github.com/user/scribe-go/auth"
	"github.com/user/scribe-go/users"
)

// memoryStore is an in-memory Store mirroring the SQL semantics: comments
// are addressed by post id and comment id together, soft-deleted rows are
// invisible, mutations require the author id to match.
type memoryStore struct {
	nextID    int64
	rows      map[int64]*Comment
	postIDs   map[int64]bool
	usernames map[int64]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		rows:      make(map[int64]*Comment),
		postIDs:   map[int64]bool{1: true},
		usernames: map[int64]string{1: "alice", 2: "bob"},
	}
}

func (s *memoryStore) visible(postID, commentID int64) *Comment {
	if !s.postIDs[postID] {
		return nil
	}
	c, ok := s.rows[commentID]
	if !ok || c.PostID != postID || c.DeletedAt != nil {
		return nil
	}
	return c
}

func (s *memoryStore) ListForPost(_ context.Context, postID int64) ([]CommentResponse, error) {
	if !s.postIDs[postID] {
		return nil, apperror.NewNotFoundError("post not found", nil)
	}
	out := []CommentResponse{}
	for id := int64(1); id <= s.nextID; id++ {
		c := s.visible(postID, id)
		if c == nil {
			continue
		}
		out = append(out, *toResponse(c, s.usernames[c.AuthorID]))
	}
	return out, nil
}

func (s *memoryStore) FindOwned(_ context.Context, postID, commentID int64) (*Comment, error) {
	c := s.visible(postID, commentID)
	if c == nil {
		return nil, apperror.NewNotFoundError("comment not found", nil)
	}
	copied := *c
	return &copied, nil
}

func (s *memoryStore) Insert(_ context.Context, postID, authorID int64, content string) (*Comment, error) {
	if !s.postIDs[postID] {
		return nil, apperror.NewNotFoundError("post not found", nil)
	}
	s.nextID++
	c := &Comment{ID: s.nextID, PostID: postID, AuthorID: authorID, Content: content, CreatedAt: time.Now()}
	s.rows[c.ID] = c
	copied := *c
	return &copied, nil
}

func (s *memoryStore) Update(_ context.Context, postID, commentID, authorID int64, content string) (*Comment, error) {
	c := s.visible(postID, commentID)
	if c == nil || c.AuthorID != authorID {
		return nil, apperror.NewNotFoundError("comment not found", nil)
	}
	c.Content = content
	copied := *c
	return &copied, nil
}

func (s *memoryStore) SoftDelete(_ context.Context, postID, commentID, authorID int64) error {
	c := s.visible(postID, commentID)
	if c == nil || c.AuthorID != authorID {
		return apperror.NewNotFoundError("comment not found", nil)
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

// memoryUserStore resolves token subjects for the service tests.
type memoryUserStore struct {
	byName map[string]*users.User
}

func (s *memoryUserStore) FindByUsername(_ context.Context, username string) (*users.User, error) {
	u, ok := s.byName[username]
	if !ok {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	copied := *u
	return &copied, nil
}

func (s *memoryUserStore) Insert(_ context.Context, username, passwordHash string) (*users.User, error) {
	u := &users.User{ID: int64(len(s.byName) + 1), Username: username, PasswordHash: passwordHash, Role: "user"}
	s.byName[username] = u
	copied := *u
	return &copied, nil
}

func claimsFor(username string) *auth.Claims {
	c := &auth.Claims{Role: "user"}
	c.Subject = username
	return c
}

func newTestService() (*Service, *memoryStore) {
	userStore := &memoryUserStore{byName: map[string]*users.User{
		"alice": {ID: 1, Username: "alice", Role: "user"},
		"bob":   {ID: 2, Username: "bob", Role: "user"},
	}}
	store := newMemoryStore()
	return NewService(store, userStore), store
}

func TestCreateBindsAuthorAndPost(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, claimsFor("alice"), 1, CreateCommentRequest{Content: "Nice post"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Author)
	assert.Equal(t, int64(1), resp.PostID)

	listed, err := svc.ListForPost(ctx, 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Nice post", listed[0].Content)
}

func TestCreateOnMissingPost(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), claimsFor("alice"), 999, CreateCommentRequest{Content: "Hello"})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, claimsFor("alice"), 1, CreateCommentRequest{Content: "Original"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, claimsFor("bob"), 1, created.ID, CreateCommentRequest{Content: "Hijacked"})
	require.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))

	listed, err := svc.ListForPost(ctx, 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Original", listed[0].Content)
}

func TestDeleteByNonOwnerIsForbidden(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, claimsFor("alice"), 1, CreateCommentRequest{Content: "Keep me"})
	require.NoError(t, err)

	err = svc.Delete(ctx, claimsFor("bob"), 1, created.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))

	listed, err := svc.ListForPost(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestOwnerCanUpdateAndDelete(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, claimsFor("alice"), 1, CreateCommentRequest{Content: "v1"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, claimsFor("alice"), 1, created.ID, CreateCommentRequest{Content: "v2"})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)

	require.NoError(t, svc.Delete(ctx, claimsFor("alice"), 1, created.ID))

	listed, err := svc.ListForPost(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestListForMissingPost(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	_, err := svc.ListForPost(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

// Soft-deleting a post takes its comments with it: listing and every
// comment operation under the post report not-found afterwards.
func TestCommentsVanishWithPost(t *testing.T) {
	t.Parallel()

	svc, store := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, claimsFor("alice"), 1, CreateCommentRequest{Content: "Attached"})
	require.NoError(t, err)

	store.postIDs[1] = false

	_, err = svc.ListForPost(ctx, 1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.Create(ctx, claimsFor("bob"), 1, CreateCommentRequest{Content: "Too late"})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.Update(ctx, claimsFor("alice"), 1, created.ID, CreateCommentRequest{Content: "Edited"})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCommentUnreachableThroughWrongPost(t *testing.T) {
	t.Parallel()

	svc, store := newTestService()
	ctx := context.Background()
	store.postIDs[2] = true

	created, err := svc.Create(ctx, claimsFor("alice"), 1, CreateCommentRequest{Content: "On post one"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, claimsFor("alice"), 2, created.ID, CreateCommentRequest{Content: "Moved?"})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
