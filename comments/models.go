// Package comments implements the comment sub-resource of posts. Every
// mutating comment operation requires authentication, and update/delete are
// guarded by ownership exactly like posts.
package comments

import "time"

// Comment is a comment row as stored in the database.
type Comment struct {
	ID        int64      `json:"id"`
	PostID    int64      `json:"post_id"`
	AuthorID  int64      `json:"author_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"-"`
}

// CommentResponse is the client-facing shape, carrying the author's
// username instead of the raw author id.
type CommentResponse struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest is the payload for creating or updating a comment.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
