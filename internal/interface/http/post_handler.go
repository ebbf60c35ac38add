package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"socialnet/internal/application"
	"socialnet/internal/domain/entity"
	"socialnet/internal/interface/middleware"
	"socialnet/pkg/response"
)

type PostHandler struct {
	Posts  *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(posts *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Posts: posts, Logger: logger}
}

// Create accepts multipart form data: content, privacy, images[], videos[].
func (h *PostHandler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "multipart form required", nil)
		return
	}
	images, err := uploadsFromForm(form, "images")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable image upload", nil)
		return
	}
	videos, err := uploadsFromForm(form, "videos")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable video upload", nil)
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Posts.Create(c.Request.Context(), uid, application.CreatePostInput{
		Content: c.PostForm("content"),
		Privacy: entity.Privacy(c.PostForm("privacy")),
		Images:  images,
		Videos:  videos,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "post created", nil)
}

func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "post", nil)
}

func (h *PostHandler) List(c *gin.Context) {
	items, page, err := h.Posts.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "posts", page)
}

func (h *PostHandler) Update(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "multipart form required", nil)
		return
	}
	images, err := uploadsFromForm(form, "images")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable image upload", nil)
		return
	}
	videos, err := uploadsFromForm(form, "videos")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable video upload", nil)
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Posts.Update(c.Request.Context(), uid, c.Param("id"), application.UpdatePostInput{
		Content: c.PostForm("content"),
		Privacy: entity.Privacy(c.PostForm("privacy")),
		Images:  images,
		Videos:  videos,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "post updated", nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Posts.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "post deleted", nil)
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	liked, err := h.Posts.ToggleLike(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"liked": liked}, "like toggled", nil)
}

// FilterByDate serves ?range=Today|Yesterday|Last 7 Days|Last 30 Days or
// ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *PostHandler) FilterByDate(c *gin.Context) {
	posts, err := h.Posts.FilterByDate(c.Request.Context(), c.Query("range"), c.Query("start"), c.Query("end"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, posts, "posts", nil)
}
