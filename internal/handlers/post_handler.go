package handlers

import (
	"net/http"
	"time"

	"snapfeed/internal/services"
	"snapfeed/internal/services/dto"
	"snapfeed/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	*BaseHandler
	postService services.PostService
}

func NewPostHandler(base *BaseHandler, postService services.PostService) *PostHandler {
	return &PostHandler{
		BaseHandler: base,
		postService: postService,
	}
}

// CreatePost handles POST /api/create-post: multipart form with an
// "image" file and a "caption" field. The ingest gate rejects bad input
// before any external call happens.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var form dto.CreatePostForm
	if !h.BindForm(c, &form) {
		return
	}

	// Absent file is a validation outcome, not a transport error
	file, err := c.FormFile("image")
	if err != nil {
		file = nil
	}

	validated, vErr := h.validator.ValidatePostUpload(file, form.Caption)
	if vErr != nil {
		apperrors.HandleError(c, vErr)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), h.GetDB(c), &dto.CreatePostRequest{
		Caption:  validated.Caption,
		File:     validated.File,
		MimeType: validated.MimeType,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PostResponse{
		Success: true,
		Message: "Post created successfully",
		Data:    post,
	})
}

// ListPosts handles GET /api/post: every post, newest first. An empty
// repository yields an empty data array, not an error.
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PostListResponse{
		Success: true,
		Message: "Posts fetched successfully",
		Count:   len(posts),
		Data:    posts,
	})
}

// Health handles GET /health.
func (h *PostHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Success:   true,
		Message:   "Server is up and running",
		Timestamp: time.Now().UTC(),
	})
}
