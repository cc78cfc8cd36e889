package posts

import (
	"context"

	"github.com/user/scribe-go/auth"
	"github.com/user/scribe-go/users"
)

// Service holds the post business logic. Mutations resolve the acting user
// through the identity store, and update/delete run the ownership guard
// after the fetch and before any mutating statement.
type Service struct {
	store Store
	users users.Store
}

// NewService creates a post Service.
func NewService(store Store, users users.Store) *Service {
	return &Service{store: store, users: users}
}

// List returns one page of posts.
func (s *Service) List(ctx context.Context, p Pagination) (*PaginatedResponse, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	offset := (p.Page - 1) * p.PageSize
	data, err := s.store.List(ctx, p.PageSize, offset)
	if err != nil {
		return nil, err
	}

	totalPages := (total + p.PageSize - 1) / p.PageSize
	return &PaginatedResponse{
		Data:       data,
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Get returns a single post by id.
func (s *Service) Get(ctx context.Context, id int64) (*PostResponse, error) {
	return s.store.Get(ctx, id)
}

// Create inserts a post owned by the authenticated identity.
func (s *Service) Create(ctx context.Context, claims *auth.Claims, req CreatePostRequest) (*PostResponse, error) {
	actor, err := auth.ResolveIdentity(ctx, s.users, claims)
	if err != nil {
		return nil, err
	}

	post, err := s.store.Insert(ctx, actor.ID, req)
	if err != nil {
		return nil, err
	}
	return toResponse(post, actor.Username), nil
}

// Update replaces a post's mutable fields if the acting user owns it.
func (s *Service) Update(ctx context.Context, claims *auth.Claims, id int64, req CreatePostRequest) (*PostResponse, error) {
	actor, err := auth.ResolveIdentity(ctx, s.users, claims)
	if err != nil {
		return nil, err
	}

	post, err := s.store.FindOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckOwnership(post.AuthorID, actor.ID, "update", "post"); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, actor.ID, req)
	if err != nil {
		return nil, err
	}
	return toResponse(updated, actor.Username), nil
}

// Delete soft-deletes a post if the acting user owns it.
func (s *Service) Delete(ctx context.Context, claims *auth.Claims, id int64) error {
	actor, err := auth.ResolveIdentity(ctx, s.users, claims)
	if err != nil {
		return err
	}

	post, err := s.store.FindOwned(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CheckOwnership(post.AuthorID, actor.ID, "delete", "post"); err != nil {
		return err
	}

	return s.store.SoftDelete(ctx, id, actor.ID)
}

func toResponse(p *Post, author string) *PostResponse {
	return &PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Author:    author,
		Content:   p.Content,
		Tags:      p.Tags,
		Copyright: p.Copyright,
		CreatedAt: p.CreatedAt,
	}
}
