package comments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/scribe-go/apperror"
)

// Store is the comment resource store. Comments are addressed by both post
// id and comment id, so a comment cannot be reached through the wrong post.
// Soft-deleted rows are invisible, and a soft-deleted post hides its
// comments with it; mutations are scoped by author id as well, so races
// resolve to zero rows affected.
type Store interface {
	ListForPost(ctx context.Context, postID int64) ([]CommentResponse, error)
	// FindOwned fetches the row including author_id for the ownership check.
	FindOwned(ctx context.Context, postID, commentID int64) (*Comment, error)
	Insert(ctx context.Context, postID, authorID int64, content string) (*Comment, error)
	Update(ctx context.Context, postID, commentID, authorID int64, content string) (*Comment, error)
	SoftDelete(ctx context.Context, postID, commentID, authorID int64) error
}

// PGStore is the pgx-backed Store implementation.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a PGStore on top of the shared connection pool.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// ListForPost implements Store. The parent post must itself be visible.
func (s *PGStore) ListForPost(ctx context.Context, postID int64) ([]CommentResponse, error) {
	if err := s.checkPostVisible(ctx, postID); err != nil {
		return nil, err
	}

	const query = `
		SELECT c.id, c.post_id, u.username, c.content, c.created_at
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.id`

	rows, err := s.db.Query(ctx, query, postID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	defer rows.Close()

	result := make([]CommentResponse, 0)
	for rows.Next() {
		var c CommentResponse
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan comment row", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read comment rows", err)
	}
	return result, nil
}

// FindOwned implements Store. The join keeps comments under a soft-deleted
// post out of reach.
func (s *PGStore) FindOwned(ctx context.Context, postID, commentID int64) (*Comment, error) {
	const query = `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at, c.deleted_at
		FROM comments c
		JOIN posts p ON c.post_id = p.id AND p.deleted_at IS NULL
		WHERE c.id = $1 AND c.post_id = $2 AND c.deleted_at IS NULL`

	var c Comment
	err := s.db.QueryRow(ctx, query, commentID, postID).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("comment not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get comment", err)
	}
	return &c, nil
}

// Insert implements Store. The insert selects from the posts table so a
// missing or soft-deleted post yields zero rows and maps to not-found; the
// FK alone would still accept a soft-deleted parent.
func (s *PGStore) Insert(ctx context.Context, postID, authorID int64, content string) (*Comment, error) {
	const query = `
		INSERT INTO comments (post_id, author_id, content)
		SELECT p.id, $2, $3
		FROM posts p
		WHERE p.id = $1 AND p.deleted_at IS NULL
		RETURNING id, post_id, author_id, content, created_at, deleted_at`

	var c Comment
	err := s.db.QueryRow(ctx, query, postID, authorID, content).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create comment", err)
	}
	return &c, nil
}

// checkPostVisible fails with not-found unless the post exists and is not
// soft-deleted.
func (s *PGStore) checkPostVisible(ctx context.Context, postID int64) error {
	const query = `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, postID).Scan(&exists); err != nil {
		return apperror.NewDatabaseError("failed to check post", err)
	}
	if !exists {
		return apperror.NewNotFoundError("post not found", nil)
	}
	return nil
}

// Update implements Store.
func (s *PGStore) Update(ctx context.Context, postID, commentID, authorID int64, content string) (*Comment, error) {
	const query = `
		UPDATE comments
		SET content = $1
		WHERE id = $2 AND post_id = $3 AND author_id = $4 AND deleted_at IS NULL
		RETURNING id, post_id, author_id, content, created_at, deleted_at`

	var c Comment
	err := s.db.QueryRow(ctx, query, content, commentID, postID, authorID).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("comment not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update comment", err)
	}
	return &c, nil
}

// SoftDelete implements Store.
func (s *PGStore) SoftDelete(ctx context.Context, postID, commentID, authorID int64) error {
	const query = `
		UPDATE comments
		SET deleted_at = now()
		WHERE id = $1 AND post_id = $2 AND author_id = $3 AND deleted_at IS NULL`

	tag, err := s.db.Exec(ctx, query, commentID, postID, authorID)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("comment not found", nil)
	}
	return nil
}
