package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muyik/smartschool/internal/container"
	handlers "github.com/muyik/smartschool/internal/interface/http"
	"github.com/muyik/smartschool/internal/interface/middleware"
)

// AuthModule wires login, refresh and logout under /api/auth.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("")
	auth.Use(middleware.Auth(container.GetJWT()))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
	}
}
