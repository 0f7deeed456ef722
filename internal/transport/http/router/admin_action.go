package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-crud-starter/internal/apperr"
	"go-gin-crud-starter/internal/feature/user"
	"go-gin-crud-starter/internal/transport/http/ez"
)

// mountAdminActions registers the backoffice endpoints: paged user listing
// plus ban/unban, which are soft delete and restore under admin names.
func mountAdminActions(admin *gin.RouterGroup, d *Deps) {
	type listQ struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`            // fuzzy match on username/email
		WithDeleted bool   `form:"with_deleted"` // include soft-deleted rows
	}
	type listOut struct {
		Total int64       `json:"total"`
		Items []user.Lite `json:"items"`
	}

	ez.RegisterAction(admin, ez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			items, total, err := d.Users.Page(c.Request.Context(),
				in.Offset, in.Limit, strings.TrimSpace(in.Q), in.WithDeleted)
			if err != nil {
				return listOut{}, err
			}
			out := listOut{Total: total, Items: make([]user.Lite, 0, len(items))}
			for i := range items {
				out.Items = append(out.Items, user.LiteView(&items[i]))
			}
			return out, nil
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, user.Lite]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (user.Lite, error) {
			id := c.Param("id")
			if id == "" {
				return user.Lite{}, apperr.BadRequest("missing id")
			}
			u, err := d.Users.Delete(c.Request.Context(), id, false)
			if err != nil {
				return user.Lite{}, err
			}
			return user.LiteView(u), nil
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, user.Lite]{
		Method: http.MethodPost,
		Path:   "/users/:id/unban",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (user.Lite, error) {
			id := c.Param("id")
			if id == "" {
				return user.Lite{}, apperr.BadRequest("missing id")
			}
			u, err := d.Users.Restore(c.Request.Context(), id)
			if err != nil {
				return user.Lite{}, err
			}
			return user.LiteView(u), nil
		},
	})
}
