package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muyik/smartschool/internal/container"
	handlers "github.com/muyik/smartschool/internal/interface/http"
	"github.com/muyik/smartschool/internal/interface/middleware"
)

// GenderModule wires gender CRUD routes under /api/app/genders.
// Reads require a valid session; writes additionally require the admin role.
type GenderModule struct {
	Handler *handlers.GenderHandler
}

func NewGenderModule(h *handlers.GenderHandler) *GenderModule {
	return &GenderModule{Handler: h}
}

func (m *GenderModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/app/genders")
	g.Use(middleware.Auth(container.GetJWT()))
	g.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))

	g.GET("", m.Handler.List)
	g.GET("/:id", m.Handler.Get)

	admin := g.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
