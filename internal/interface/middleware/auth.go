package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muyik/smartschool/internal/domain/entity"
	"github.com/muyik/smartschool/pkg/helpers"
	"github.com/muyik/smartschool/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxRoleKey   = "userRole"
)

// Auth validates the access token cookie and injects the user identity into
// the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin gates write endpoints to admin users. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRoleKey) != entity.RoleAdmin {
			response.Error(c, http.StatusForbidden, "admin role required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin lets a user act on their own record (matched against the
// :id route param) and admins act on anyone's. Must run after Auth.
func RequireSelfOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRoleKey) == entity.RoleAdmin || c.GetString(CtxUserIDKey) == c.Param("id") {
			c.Next()
			return
		}
		response.Error(c, http.StatusForbidden, "you can only modify your own record", nil)
		c.Abort()
	}
}

// ForbidSelf rejects requests targeting the caller's own record, so an admin
// cannot delete their own account. Must run after Auth.
func ForbidSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserIDKey) == c.Param("id") {
			response.Error(c, http.StatusBadRequest, "you cannot delete your own account", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
