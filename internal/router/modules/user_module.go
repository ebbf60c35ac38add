package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"socialnet/internal/container"
	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	handlers "socialnet/internal/interface/http"
	"socialnet/internal/interface/middleware"
	"socialnet/pkg/helpers"
)

// UserModule wires the auth and user routes.
// Public: signup/login/confirm/forgot/reset (rate-limited per IP+path).
// Plain guard: current-user, list, search.
// Role USER: password change, profile, soft delete, friend requests.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
	Tokens  repository.TokenRepository
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, users repository.UserRepository, tokens repository.TokenRepository) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Users: users, Tokens: tokens}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	otpLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/users")

	users.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	users.POST("/auth/login", loginLimiter, m.Handler.Login)
	users.GET("/confirmEmail", m.Handler.ConfirmEmail)
	users.POST("/forgot-password", otpLimiter, m.Handler.ForgotPassword)
	users.POST("/reset-password", otpLimiter, m.Handler.ResetPassword)

	plain := middleware.Authenticated(m.JWT)
	users.GET("", plain, m.Handler.List)
	users.GET("/current-user", plain, m.Handler.CurrentUser)
	users.GET("/search", plain, m.Handler.Search)

	asUser := middleware.RequireRoles(m.JWT, m.Users, m.Tokens, entity.RoleUser)
	users.PUT("/change-password", asUser, m.Handler.ChangePassword)
	users.PUT("/update", asUser, m.Handler.UpdateProfile)
	users.PATCH("/softdelete", asUser, m.Handler.SoftDelete)
	users.PATCH("/profileimage", asUser, m.Handler.ProfileImage)
	users.PATCH("/profilecoverimage", asUser, m.Handler.ProfileCoverImage)
	users.PATCH("/sendrequest/:id", asUser, m.Handler.SendFriendRequest)
	users.PATCH("/cancelrequest/:id", asUser, m.Handler.CancelFriendRequest)
}
