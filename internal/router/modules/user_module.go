package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muyik/smartschool/internal/container"
	handlers "github.com/muyik/smartschool/internal/interface/http"
	"github.com/muyik/smartschool/internal/interface/middleware"
)

// UserModule wires user routes under /api/app/users, including search and
// photo upload.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/app/users")
	g.Use(middleware.Auth(container.GetJWT()))
	g.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)

	g.GET("/search", m.Handler.SearchUsers)
	g.GET("/:id", m.Handler.Get)

	// Users may edit their own record; everything else is admin-only, and
	// admins cannot delete themselves.
	g.PUT("/:id", middleware.RequireSelfOrAdmin(), m.Handler.Update)
	g.POST("/:id/photo", middleware.RequireSelfOrAdmin(), m.Handler.UploadPhoto)

	admin := g.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("", m.Handler.List)
		admin.POST("", m.Handler.Create)
		admin.DELETE("/:id", middleware.ForbidSelf(), m.Handler.Delete)
	}
}
