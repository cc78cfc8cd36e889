package comments

import (
	"context"

	"github.com/user/scribe-go/auth"
	"github.com/user/scribe-go/users"
)

// Service holds the comment business logic. The shape mirrors posts.Service:
// resolve the acting identity, fetch, ownership guard, then mutate.
type Service struct {
	store Store
	users users.Store
}

// NewService creates a comment Service.
func NewService(store Store, users users.Store) *Service {
	return &Service{store: store, users: users}
}

// ListForPost returns all comments on a post.
func (s *Service) ListForPost(ctx context.Context, postID int64) ([]CommentResponse, error) {
	return s.store.ListForPost(ctx, postID)
}

// Create adds a comment owned by the authenticated identity.
func (s *Service) Create(ctx context.Context, claims *auth.Claims, postID int64, req CreateCommentRequest) (*CommentResponse, error) {
	actor, err := auth.ResolveIdentity(ctx, s.users, claims)
	if err != nil {
		return nil, err
	}

	comment, err := s.store.Insert(ctx, postID, actor.ID, req.Content)
	if err != nil {
		return nil, err
	}
	return toResponse(comment, actor.Username), nil
}

// Update replaces a comment's content if the acting user owns it.
func (s *Service) Update(ctx context.Context, claims *auth.Claims, postID, commentID int64, req CreateCommentRequest) (*CommentResponse, error) {
	actor, err := auth.ResolveIdentity(ctx, s.users, claims)
	if err != nil {
		return nil, err
	}

	comment, err := s.store.FindOwned(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckOwnership(comment.AuthorID, actor.ID, "update", "comment"); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, postID, commentID, actor.ID, req.Content)
	if err != nil {
		return nil, err
	}
	return toResponse(updated, actor.Username), nil
}

// Delete soft-deletes a comment if the acting user owns it.
func (s *Service) Delete(ctx context.Context, claims *auth.Claims, postID, commentID int64) error {
	actor, err := auth.ResolveIdentity(ctx, s.users, claims)
	if err != nil {
		return err
	}

	comment, err := s.store.FindOwned(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if err := auth.CheckOwnership(comment.AuthorID, actor.ID, "delete", "comment"); err != nil {
		return err
	}

	return s.store.SoftDelete(ctx, postID, commentID, actor.ID)
}

func toResponse(c *Comment, author string) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Author:    author,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
