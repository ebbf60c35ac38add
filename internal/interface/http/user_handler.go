package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"socialnet/internal/application"
	"socialnet/internal/interface/middleware"
	"socialnet/pkg/response"
)

// UserHandler serves the auth endpoints and everything under /api/users.
type UserHandler struct {
	Auth   *application.AuthService
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(auth *application.AuthService, users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Auth: auth, Users: users, Logger: logger}
}

type signupRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	Phone           string `json:"phone" binding:"required"`
	Age             int    `json:"age" binding:"omitempty,gte=0"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	OTP             string `json:"otp" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Age   int    `json:"age" binding:"omitempty,gte=0"`
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Auth.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Age:      req.Age,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "registered", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	bearer, u, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token": bearer,
		"user": gin.H{
			"id":     u.ID,
			"name":   u.Name,
			"email":  u.Email,
			"role":   u.Role,
			"status": u.Status,
		},
	}, "login successful", nil)
}

// ConfirmEmail consumes ?email=&otp= from the confirmation link.
func (h *UserHandler) ConfirmEmail(c *gin.Context) {
	email := c.Query("email")
	otp := c.Query("otp")
	if email == "" || otp == "" {
		response.Error[any](c, http.StatusBadRequest, "email and otp are required", nil)
		return
	}
	if err := h.Auth.ConfirmEmail(c.Request.Context(), email, otp); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"confirmed": true}, "email confirmed", nil)
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "OTP sent to your email", nil)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	err := h.Auth.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password reset", nil)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	err := h.Auth.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password changed", nil)
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Users.CurrentUser(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "current user", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	items, page, err := h.Users.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "users", page)
}

func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	out, err := h.Users.Search(c.Request.Context(), q, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "search results", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Users.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Age:   req.Age,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}

func (h *UserHandler) SoftDelete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Users.SoftDelete(c.Request.Context(), uid); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "account deleted", nil)
}

func (h *UserHandler) ProfileImage(c *gin.Context) {
	h.profileAsset(c, true)
}

func (h *UserHandler) ProfileCoverImage(c *gin.Context) {
	h.profileAsset(c, false)
}

func (h *UserHandler) profileAsset(c *gin.Context, image bool) {
	up, err := singleUpload(c, "image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	var setter = h.Users.SetProfileCover
	if image {
		setter = h.Users.SetProfileImage
	}
	asset, err := setter(c.Request.Context(), uid, up)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, asset, "image uploaded", nil)
}

func (h *UserHandler) SendFriendRequest(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Users.SendFriendRequest(c.Request.Context(), uid, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "friend request sent", nil)
}

func (h *UserHandler) CancelFriendRequest(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Users.CancelFriendRequest(c.Request.Context(), uid, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"cancelled": true}, "friend request cancelled", nil)
}
