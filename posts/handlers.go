package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/scribe-go/apperror"
	"github.com/user/scribe-go/auth"
	"github.com/user/scribe-go/validation"
)

// Handler exposes the post HTTP endpoints.
type Handler struct {
	service  *Service
	validate *validation.Validator
}

// NewHandler creates a post Handler.
func NewHandler(service *Service, validate *validation.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

// List godoc
// @Summary List posts
// @Tags Posts
// @Produce json
// @Param page query int false "Page number (1-1000)"
// @Param page_size query int false "Page size (1-100)"
// @Success 200 {object} posts.PaginatedResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Router /posts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := DefaultPagination()
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid page parameter", nil))
			return
		}
		p.Page = n
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid page_size parameter", nil))
			return
		}
		p.PageSize = n
	}
	if err := h.validate.Struct(p); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	resp, err := h.service.List(r.Context(), p)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, resp)
}

// Get godoc
// @Summary Get a post by id
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} posts.PostResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /posts/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, post)
}

// Create godoc
// @Summary Create a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param postBody body posts.CreatePostRequest true "Post fields"
// @Success 201 {object} posts.PostResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	req, err := h.decodeBody(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	post, err := h.service.Create(r.Context(), claims, *req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, post)
}

// Update godoc
// @Summary Update a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param postBody body posts.CreatePostRequest true "Post fields"
// @Success 200 {object} posts.PostResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	id, err := postID(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	req, err := h.decodeBody(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	post, err := h.service.Update(r.Context(), claims, id, *req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, post)
}

// Delete godoc
// @Summary Delete a post
// @Tags Posts
// @Param id path int true "Post ID"
// @Success 204 "Post deleted"
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	id, err := postID(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), claims, id); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeBody(r *http.Request) (*CreatePostRequest, error) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil)
	}
	defer r.Body.Close()
	if err := h.validate.Struct(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func postID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.NewBadRequestError("invalid post id", nil)
	}
	return id, nil
}
