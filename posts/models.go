// Package posts implements the post resource: public reads with pagination,
// and authenticated, ownership-guarded mutations. A post records its author
// at creation time; that binding never changes and is the sole authorization
// rule for update and delete.
package posts

import "time"

// Post is a post row as stored in the database.
type Post struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	AuthorID  int64      `json:"author_id"`
	Content   string     `json:"content"`
	Tags      string     `json:"tags"`
	Copyright string     `json:"copyright"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"-"`
}

// PostResponse is the client-facing shape, carrying the author's username
// instead of the raw author id.
type PostResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Tags      string    `json:"tags"`
	Copyright string    `json:"copyright"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest is the payload for creating or updating a post.
type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Content   string `json:"content" validate:"required,min=1,max=10000"`
	Tags      string `json:"tags" validate:"max=200"`
	Copyright string `json:"copyright" validate:"max=200"`
}

// Pagination carries the list query parameters with their bounds.
type Pagination struct {
	Page     int64 `validate:"gte=1,lte=1000"`
	PageSize int64 `validate:"gte=1,lte=100"`
}

// DefaultPagination returns the first page at the default size.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, PageSize: 10}
}

// PaginatedResponse is the list envelope.
type PaginatedResponse struct {
	Data       []PostResponse `json:"data"`
	Page       int64          `json:"page"`
	PageSize   int64          `json:"page_size"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"total_pages"`
}
