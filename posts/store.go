package posts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/scribe-go/apperror"
)

// Store is the post resource store. Soft-deleted rows are invisible through
// every method. Mutations are scoped by both post id and author id so a
// concurrent delete yields zero rows affected instead of a misattributed
// write.
type Store interface {
	List(ctx context.Context, limit, offset int64) ([]PostResponse, error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id int64) (*PostResponse, error)
	// FindOwned fetches the row including author_id for the ownership check.
	FindOwned(ctx context.Context, id int64) (*Post, error)
	Insert(ctx context.Context, authorID int64, req CreatePostRequest) (*Post, error)
	Update(ctx context.Context, id, authorID int64, req CreatePostRequest) (*Post, error)
	SoftDelete(ctx context.Context, id, authorID int64) error
}

// PGStore is the pgx-backed Store implementation.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a PGStore on top of the shared connection pool.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// List implements Store.
func (s *PGStore) List(ctx context.Context, limit, offset int64) ([]PostResponse, error) {
	const query = `
		SELECT p.id, p.title, u.username, p.content, p.tags, p.copyright, p.created_at
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.deleted_at IS NULL
		ORDER BY p.id
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	defer rows.Close()

	result := make([]PostResponse, 0, limit)
	for rows.Next() {
		var p PostResponse
		if err := rows.Scan(&p.ID, &p.Title, &p.Author, &p.Content, &p.Tags, &p.Copyright, &p.CreatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post row", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read post rows", err)
	}
	return result, nil
}

// Count implements Store.
func (s *PGStore) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE deleted_at IS NULL`).Scan(&total)
	if err != nil {
		return 0, apperror.NewDatabaseError("failed to count posts", err)
	}
	return total, nil
}

// Get implements Store.
func (s *PGStore) Get(ctx context.Context, id int64) (*PostResponse, error) {
	const query = `
		SELECT p.id, p.title, u.username, p.content, p.tags, p.copyright, p.created_at
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1 AND p.deleted_at IS NULL`

	var p PostResponse
	err := s.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.Author, &p.Content, &p.Tags, &p.Copyright, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	return &p, nil
}

// FindOwned implements Store.
func (s *PGStore) FindOwned(ctx context.Context, id int64) (*Post, error) {
	const query = `
		SELECT id, title, author_id, content, tags, copyright, created_at, deleted_at
		FROM posts
		WHERE id = $1 AND deleted_at IS NULL`

	var p Post
	err := s.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.AuthorID, &p.Content, &p.Tags, &p.Copyright, &p.CreatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	return &p, nil
}

// Insert implements Store.
func (s *PGStore) Insert(ctx context.Context, authorID int64, req CreatePostRequest) (*Post, error) {
	const query = `
		INSERT INTO posts (title, author_id, content, tags, copyright)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, author_id, content, tags, copyright, created_at, deleted_at`

	var p Post
	err := s.db.QueryRow(ctx, query, req.Title, authorID, req.Content, req.Tags, req.Copyright).Scan(
		&p.ID, &p.Title, &p.AuthorID, &p.Content, &p.Tags, &p.Copyright, &p.CreatedAt, &p.DeletedAt,
	)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	return &p, nil
}

// Update implements Store. Zero rows affected maps to not-found: the post
// vanished between the ownership check and the write.
func (s *PGStore) Update(ctx context.Context, id, authorID int64, req CreatePostRequest) (*Post, error) {
	const query = `
		UPDATE posts
		SET title = $1, content = $2, tags = $3, copyright = $4
		WHERE id = $5 AND author_id = $6 AND deleted_at IS NULL
		RETURNING id, title, author_id, content, tags, copyright, created_at, deleted_at`

	var p Post
	err := s.db.QueryRow(ctx, query, req.Title, req.Content, req.Tags, req.Copyright, id, authorID).Scan(
		&p.ID, &p.Title, &p.AuthorID, &p.Content, &p.Tags, &p.Copyright, &p.CreatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update post", err)
	}
	return &p, nil
}

// SoftDelete implements Store.
func (s *PGStore) SoftDelete(ctx context.Context, id, authorID int64) error {
	const query = `
		UPDATE posts
		SET deleted_at = now()
		WHERE id = $1 AND author_id = $2 AND deleted_at IS NULL`

	tag, err := s.db.Exec(ctx, query, id, authorID)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("post not found", nil)
	}
	return nil
}
