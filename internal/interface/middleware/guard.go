package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	"socialnet/pkg/helpers"
	"socialnet/pkg/response"
)

const (
	// CtxClaimsKey holds the decoded *helpers.Claims of the caller.
	CtxClaimsKey = "authClaims"
	// CtxUserIDKey holds the caller's user id, required by handlers.
	CtxUserIDKey = "userID"
)

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func deny(c *gin.Context, msg string) {
	response.Error[any](c, http.StatusUnauthorized, msg, nil)
	c.Abort()
}

func attach(c *gin.Context, claims *helpers.Claims) {
	c.Set(CtxClaimsKey, claims)
	c.Set(CtxUserIDKey, claims.UserID)
}

// ClaimsFromCtx returns the claims attached by a guard, or nil.
func ClaimsFromCtx(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.Claims)
	return claims
}

// Authenticated is the plain bearer guard: verify signature and expiry,
// attach the decoded claims, nothing else.
func Authenticated(jwtm *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			deny(c, "missing bearer token")
			return
		}
		claims, err := jwtm.Parse(token)
		if err != nil {
			deny(c, "invalid or expired token")
			return
		}
		attach(c, claims)
		c.Next()
	}
}

// RequireRoles gates a route on role membership. An empty role set denies
// every request, valid token or not.
//
// When signature verification fails the guard consults the token store for a
// still-valid record of the raw token; a hit does not authorize the request,
// every exit of that branch denies. Only the verified-signature role match
// lets a request through.
func RequireRoles(jwtm *helpers.JWTManager, users repository.UserRepository, tokens repository.TokenRepository, roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(roles) == 0 {
			deny(c, "access denied")
			return
		}
		token, ok := bearerToken(c)
		if !ok {
			deny(c, "missing bearer token")
			return
		}
		claims, err := jwtm.Parse(token)
		if err != nil {
			if _, lookupErr := tokens.FindValid(c.Request.Context(), token); lookupErr == nil {
				deny(c, "invalid or expired token")
				return
			}
			deny(c, "invalid or expired token")
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			deny(c, "access denied")
			return
		}
		for _, r := range roles {
			if u.Role == r {
				attach(c, claims)
				c.Next()
				return
			}
		}
		deny(c, "access denied")
	}
}
