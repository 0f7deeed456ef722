package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-crud-starter/internal/apperr"
	"go-gin-crud-starter/internal/transport/http/ez"
	"go-gin-crud-starter/internal/transport/http/middleware"
	"go-gin-crud-starter/internal/transport/http/response"
)

// Module mounts the user endpoints on an authenticated group.
type Module struct {
	Svc *Service
	Log *zap.Logger
}

func NewModule(svc *Service, log *zap.Logger) *Module {
	return &Module{Svc: svc, Log: log}
}

func (m *Module) MountAPI(g *gin.RouterGroup) {
	// Mutations are reserved for section heads; reads need only a login.
	guarded := g.Group("")
	guarded.Use(middleware.RequireSectionHead())

	ez.Crud(ez.Config[User, Create, Update, Lite, Detail]{
		Group:   g,
		Path:    "/users",
		Service: m.Svc,
		Entity:  apperr.EntityUser,
		Log:     m.Log,
		Lite:    LiteView,
		Detail:  DetailView,

		AllowList: true,
		AllowGet:  true,
	})
	ez.Crud(ez.Config[User, Create, Update, Lite, Detail]{
		Group:   guarded,
		Path:    "/users",
		Service: m.Svc,
		Entity:  apperr.EntityUser,
		Log:     m.Log,
		Lite:    LiteView,
		Detail:  DetailView,

		AllowCreate:         true,
		AllowCreateMultiple: true,
		AllowUpdate:         true,
		AllowRestore:        true,
		AllowDelete:         true,
	})

	g.GET("/me", func(c *gin.Context) {
		id, ok := middleware.IdentityFrom(c)
		if !ok {
			response.Err(c, apperr.Unauthorized(""))
			return
		}
		u, err := m.Svc.Get(c.Request.Context(), id.ID, false)
		if err != nil {
			response.Err(c, err)
			return
		}
		c.JSON(http.StatusOK, DetailView(u))
	})
}
