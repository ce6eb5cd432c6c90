package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/http/middleware"
)

// PostHandlers serves blog posts
type PostHandlers struct {
	posts domain.PostService
}

// NewPostHandlers creates new post handlers
func NewPostHandlers(posts domain.PostService) *PostHandlers {
	return &PostHandlers{posts: posts}
}

// CreatePostRequest is the body of POST /posts
type CreatePostRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

// UpdatePostRequest is the body of PATCH /posts/:id
type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Published *bool   `json:"published"`
}

func (h *PostHandlers) List(c *gin.Context) {
	respondData(c, h.posts.List(c.Request.Context(), middleware.Payload(c)))
}

// ListByOwner serves GET /users/:id/posts
func (h *PostHandlers) ListByOwner(c *gin.Context) {
	respondData(c, h.posts.ListByOwner(c.Request.Context(), c.Param("id"), middleware.Payload(c)))
}

func (h *PostHandlers) Get(c *gin.Context) {
	respondData(c, h.posts.Get(c.Request.Context(), c.Param("id"), middleware.Payload(c)))
}

func (h *PostHandlers) Create(c *gin.Context) {
	var req CreatePostRequest
	if !bind(c, &req) {
		return
	}
	draft := domain.PostDraft{Title: req.Title, Body: req.Body, Published: req.Published}
	respondData(c, h.posts.Create(c.Request.Context(), middleware.Payload(c), draft))
}

func (h *PostHandlers) Update(c *gin.Context) {
	var req UpdatePostRequest
	if !bind(c, &req) {
		return
	}
	patch := domain.PostPatch{Title: req.Title, Body: req.Body, Published: req.Published}
	respondData(c, h.posts.Update(c.Request.Context(), middleware.Payload(c), c.Param("id"), patch))
}

func (h *PostHandlers) Delete(c *gin.Context) {
	respond(c, h.posts.Delete(c.Request.Context(), middleware.Payload(c), c.Param("id")))
}
