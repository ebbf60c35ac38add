package router

import "github.com/gin-gonic/gin"

// Module is one feature area (users, posts, comments, replies) that knows how
// to register its own routes and guards on the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
