package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"socialnet/internal/application"
	"socialnet/internal/interface/middleware"
	"socialnet/pkg/response"
)

type CommentHandler struct {
	Comments *application.CommentService
	Logger   *logrus.Logger
}

func NewCommentHandler(comments *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Comments: comments, Logger: logger}
}

type commentRequest struct {
	Body string `json:"comment_body" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	out, err := h.Comments.Create(c.Request.Context(), uid, c.Param("postId"), req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out, "comment created", nil)
}

func (h *CommentHandler) Get(c *gin.Context) {
	out, err := h.Comments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "comment", nil)
}

func (h *CommentHandler) GetAll(c *gin.Context) {
	out, err := h.Comments.GetAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "comments", nil)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	out, err := h.Comments.Update(c.Request.Context(), uid, c.Param("id"), req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "comment updated", nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Comments.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "comment deleted", nil)
}

func (h *CommentHandler) ToggleLike(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	liked, err := h.Comments.ToggleLike(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"liked": liked}, "like toggled", nil)
}
