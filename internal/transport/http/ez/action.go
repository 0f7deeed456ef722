package ez

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-crud-starter/internal/apperr"
	"go-gin-crud-starter/internal/transport/http/response"
)

type Binder func(c *gin.Context, v any) error

func BindJSON(c *gin.Context, v any) error  { return c.ShouldBindJSON(v) }
func BindQuery(c *gin.Context, v any) error { return c.ShouldBindQuery(v) }
func BindNone(*gin.Context, any) error      { return nil }

// Action mounts a single non-CRUD endpoint with typed input and output.
type Action[I, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Status  int // default 200
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I, O any](g *gin.RouterGroup, a Action[I, O]) {
	if a.Binder == nil {
		a.Binder = BindNone
	}
	if a.Status == 0 {
		a.Status = http.StatusOK
	}
	g.Handle(a.Method, a.Path, func(c *gin.Context) {
		in := new(I)
		if err := a.Binder(c, in); err != nil {
			response.Err(c, apperr.BadRequest(err.Error()))
			return
		}
		out, err := a.Handler(c, in)
		if err != nil {
			response.Err(c, err)
			return
		}
		if a.Status == http.StatusNoContent {
			c.Status(a.Status)
			return
		}
		c.JSON(a.Status, out)
	})
}
