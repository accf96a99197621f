package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muyik/smartschool/internal/container"
	handlers "github.com/muyik/smartschool/internal/interface/http"
	"github.com/muyik/smartschool/internal/interface/middleware"
)

// SchoolClassModule wires class CRUD routes under /api/app/school-classes.
type SchoolClassModule struct {
	Handler *handlers.SchoolClassHandler
}

func NewSchoolClassModule(h *handlers.SchoolClassHandler) *SchoolClassModule {
	return &SchoolClassModule{Handler: h}
}

func (m *SchoolClassModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/app/school-classes")
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
