package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"socialnet/internal/application"
	"socialnet/internal/interface/middleware"
	"socialnet/pkg/response"
)

type ReplyHandler struct {
	Replies *application.ReplyService
	Logger  *logrus.Logger
}

func NewReplyHandler(replies *application.ReplyService, logger *logrus.Logger) *ReplyHandler {
	return &ReplyHandler{Replies: replies, Logger: logger}
}

type replyRequest struct {
	Body string `json:"reply_body" binding:"required"`
}

func (h *ReplyHandler) Create(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	out, err := h.Replies.Create(c.Request.Context(), uid, c.Param("postId"), c.Param("commentId"), req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out, "reply created", nil)
}

func (h *ReplyHandler) Get(c *gin.Context) {
	out, err := h.Replies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "reply", nil)
}

func (h *ReplyHandler) GetAll(c *gin.Context) {
	out, err := h.Replies.GetAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "replies", nil)
}

func (h *ReplyHandler) Update(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	out, err := h.Replies.Update(c.Request.Context(), uid, c.Param("id"), req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "reply updated", nil)
}

func (h *ReplyHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Replies.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "reply deleted", nil)
}

func (h *ReplyHandler) ToggleLike(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	liked, err := h.Replies.ToggleLike(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"liked": liked}, "like toggled", nil)
}
