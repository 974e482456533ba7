package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"inkwell/internal/errors"
	"inkwell/internal/service"
)

// BlogHandler handles blog post endpoints.
type BlogHandler struct {
	postService service.PostService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(postService service.PostService) *BlogHandler {
	return &BlogHandler{postService: postService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// ListAll godoc
// @Summary List every blog post
// @Tags blog
// @Produce json
// @Success 200 {array} model.Post
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/all [get]
func (h *BlogHandler) ListAll(c echo.Context) error {
	posts, err := h.postService.ListAll(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, posts)
}

// ListPage godoc
// @Summary List one page of blog posts
// @Tags blog
// @Produce json
// @Param page path int true "Page number, starting at 1"
// @Param pagesize query int false "Posts per page" default(10)
// @Success 200 {array} model.Post
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/page/{page} [get]
func (h *BlogHandler) ListPage(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page must be an integer")
	}

	pageSize := service.DefaultPageSize
	if raw := c.QueryParam("pagesize"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "pagesize must be an integer")
		}
	}

	posts, err := h.postService.ListPage(c.Request().Context(), page, pageSize)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, posts)
}

// Create godoc
// @Summary Create a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/create [post]
func (h *BlogHandler) Create(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.postService.Create(c.Request().Context(), req.Title, req.Content, req.Tags); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "success"})
}
