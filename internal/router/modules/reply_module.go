package modules

import (
	"github.com/gin-gonic/gin"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	handlers "socialnet/internal/interface/http"
	"socialnet/internal/interface/middleware"
	"socialnet/pkg/helpers"
)

type ReplyModule struct {
	Handler *handlers.ReplyHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
	Tokens  repository.TokenRepository
}

func NewReplyModule(h *handlers.ReplyHandler, jwt *helpers.JWTManager, users repository.UserRepository, tokens repository.TokenRepository) *ReplyModule {
	return &ReplyModule{Handler: h, JWT: jwt, Users: users, Tokens: tokens}
}

func (m *ReplyModule) Register(rg *gin.RouterGroup) {
	plain := middleware.Authenticated(m.JWT)
	asUser := middleware.RequireRoles(m.JWT, m.Users, m.Tokens, entity.RoleUser)

	reply := rg.Group("/commentreplay")

	reply.GET("", plain, m.Handler.GetAll)
	reply.GET("/detail/:id", plain, m.Handler.Get)

	reply.POST("/create/:postId/:commentId", asUser, m.Handler.Create)
	reply.PUT("/update/:id", asUser, m.Handler.Update)
	reply.DELETE("/delete/:id", asUser, m.Handler.Delete)
	reply.PATCH("/like/:id", asUser, m.Handler.ToggleLike)
}
