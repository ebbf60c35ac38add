package modules

import (
	"github.com/gin-gonic/gin"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	handlers "socialnet/internal/interface/http"
	"socialnet/internal/interface/middleware"
	"socialnet/pkg/helpers"
)

type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
	Tokens  repository.TokenRepository
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager, users repository.UserRepository, tokens repository.TokenRepository) *PostModule {
	return &PostModule{Handler: h, JWT: jwt, Users: users, Tokens: tokens}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	plain := middleware.Authenticated(m.JWT)
	asUser := middleware.RequireRoles(m.JWT, m.Users, m.Tokens, entity.RoleUser)

	post := rg.Group("/post")

	post.GET("", plain, m.Handler.List)
	post.GET("/filter", plain, m.Handler.FilterByDate)
	post.GET("/detail/:id", plain, m.Handler.Get)

	post.POST("", asUser, m.Handler.Create)
	post.PUT("/update/:id", asUser, m.Handler.Update)
	post.DELETE("/delete/:id", asUser, m.Handler.Delete)
	post.PATCH("/like/:id", asUser, m.Handler.ToggleLike)
}
