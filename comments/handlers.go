package comments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/scribe-go/apperror"
	"github.com/user/scribe-go/auth"
	"github.com/user/scribe-go/validation"
)

// Handler exposes the comment HTTP endpoints.
type Handler struct {
	service  *Service
	validate *validation.Validator
}

// NewHandler creates a comment Handler.
func NewHandler(service *Service, validate *validation.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

// ListForPost godoc
// @Summary List comments on a post
// @Tags Comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} comments.CommentResponse
// @Router /posts/{id}/comments [get]
func (h *Handler) ListForPost(w http.ResponseWriter, r *http.Request) {
	postID, err := urlID(r, "postID", "post")
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	list, err := h.service.ListForPost(r.Context(), postID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, list)
}

// Create godoc
// @Summary Create a comment on a post
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param commentBody body comments.CreateCommentRequest true "Comment fields"
// @Success 201 {object} comments.CommentResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	postID, err := urlID(r, "postID", "post")
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	req, err := h.decodeBody(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	comment, err := h.service.Create(r.Context(), claims, postID, *req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, comment)
}

// Update godoc
// @Summary Update a comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param post_id path int true "Post ID"
// @Param comment_id path int true "Comment ID"
// @Param commentBody body comments.CreateCommentRequest true "Comment fields"
// @Success 200 {object} comments.CommentResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /posts/{post_id}/comments/{comment_id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	postID, err := urlID(r, "postID", "post")
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	commentID, err := urlID(r, "commentID", "comment")
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	req, err := h.decodeBody(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	comment, err := h.service.Update(r.Context(), claims, postID, commentID, *req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Tags Comments
// @Param post_id path int true "Post ID"
// @Param comment_id path int true "Comment ID"
// @Success 204 "Comment deleted"
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /posts/{post_id}/comments/{comment_id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	postID, err := urlID(r, "postID", "post")
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	commentID, err := urlID(r, "commentID", "comment")
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), claims, postID, commentID); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeBody(r *http.Request) (*CreateCommentRequest, error) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil)
	}
	defer r.Body.Close()
	if err := h.validate.Struct(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func urlID(r *http.Request, param, resource string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.NewBadRequestError("invalid "+resource+" id", nil)
	}
	return id, nil
}
