package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapi/internal/app"
	"blogapi/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
}

// StorePostRequest deliberately has no author field: the author is always
// the authenticated principal.
type StorePostRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Slug    string `json:"slug" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=255"`
	Slug    *string `json:"slug" binding:"omitempty,max=255"`
	Content *string `json:"content"`
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) List(c *gin.Context) {
	posts, info, err := h.postService.List(intQuery(c, "page"), intQuery(c, "per_page"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "", response.NewPage(posts, info.Page, info.PerPage, info.Total))
}

func (h *PostHandler) Create(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		_ = c.Error(app.ErrForbidden)
		return
	}

	var req StorePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	post, err := h.postService.Create(c.Request.Context(), principal, app.CreatePostInput{
		Title:   req.Title,
		Slug:    req.Slug,
		Content: req.Content,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Post created successfully", post)
}

func (h *PostHandler) Show(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	post, err := h.postService.Get(id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Post retrieved successfully", post)
}

func (h *PostHandler) Update(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		_ = c.Error(app.ErrForbidden)
		return
	}

	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	post, err := h.postService.Update(c.Request.Context(), principal, id, app.UpdatePostInput{
		Title:   req.Title,
		Slug:    req.Slug,
		Content: req.Content,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Post updated successfully", post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		_ = c.Error(app.ErrForbidden)
		return
	}

	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.postService.Delete(c.Request.Context(), principal, id); err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Post deleted successfully", nil)
}
