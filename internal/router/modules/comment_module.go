package modules

import (
	"github.com/gin-gonic/gin"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	handlers "socialnet/internal/interface/http"
	"socialnet/internal/interface/middleware"
	"socialnet/pkg/helpers"
)

type CommentModule struct {
	Handler *handlers.CommentHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
	Tokens  repository.TokenRepository
}

func NewCommentModule(h *handlers.CommentHandler, jwt *helpers.JWTManager, users repository.UserRepository, tokens repository.TokenRepository) *CommentModule {
	return &CommentModule{Handler: h, JWT: jwt, Users: users, Tokens: tokens}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	plain := middleware.Authenticated(m.JWT)
	asUser := middleware.RequireRoles(m.JWT, m.Users, m.Tokens, entity.RoleUser)

	comment := rg.Group("/comment")

	comment.GET("", plain, m.Handler.GetAll)
	comment.GET("/detail/:id", plain, m.Handler.Get)

	comment.POST("/post/:postId", asUser, m.Handler.Create)
	comment.PUT("/update/:id", asUser, m.Handler.Update)
	comment.DELETE("/delete/:id", asUser, m.Handler.Delete)
	comment.PATCH("/like/:id", asUser, m.Handler.ToggleLike)
}
