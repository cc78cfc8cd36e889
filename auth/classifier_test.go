package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiresAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		path   string
		want   bool
	}{
		{"get posts is public", http.MethodGet, "/posts", false},
		{"get single post is public", http.MethodGet, "/posts/42", false},
		{"get comments is public", http.MethodGet, "/posts/42/comments", false},
		{"get root is public", http.MethodGet, "/", false},
		{"head is public", http.MethodHead, "/posts", false},
		{"options is public", http.MethodOptions, "/posts", false},

		{"register is public", http.MethodPost, "/register", false},
		{"login is public", http.MethodPost, "/login", false},

		{"create post is protected", http.MethodPost, "/posts", true},
		{"update post is protected", http.MethodPut, "/posts/42", true},
		{"delete post is protected", http.MethodDelete, "/posts/42", true},
		{"create comment is protected", http.MethodPost, "/posts/42/comments", true},
		{"update comment is protected", http.MethodPut, "/posts/42/comments/7", true},
		{"delete comment is protected", http.MethodDelete, "/posts/42/comments/7", true},

		{"unknown mutating path is protected", http.MethodPost, "/somewhere", true},
		{"unknown delete path is protected", http.MethodDelete, "/anything/else", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequiresAuth(tt.method, tt.path))
		})
	}
}
