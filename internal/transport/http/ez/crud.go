// Package ez registers standard endpoints declaratively: Crud wires the
// seven stock operations of an entity onto a router group, RegisterAction
// mounts one-off endpoints with typed in/out shapes.
package ez

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-crud-starter/internal/apperr"
	"go-gin-crud-starter/internal/crud"
	"go-gin-crud-starter/internal/transport/http/response"
)

// CrudService is what the builder needs from the business layer.
type CrudService[M any, C crud.CreateInput[M], U crud.UpdateInput] interface {
	Get(ctx context.Context, id string, includeRemoved bool) (*M, error)
	GetAll(ctx context.Context, includeRemoved bool) ([]M, error)
	Create(ctx context.Context, in C) (*M, error)
	Update(ctx context.Context, id string, in U) (*M, error)
	Restore(ctx context.Context, id string) (*M, error)
	Delete(ctx context.Context, id string, hardRemove bool) (*M, error)
}

// Config describes one CRUD mount. L and D are the lite and detail read
// views; lists and delete responses use lite, everything else detail.
type Config[M any, C crud.CreateInput[M], U crud.UpdateInput, L, D any] struct {
	Group   *gin.RouterGroup
	Path    string // e.g. "/users"
	Service CrudService[M, C, U]
	Entity  apperr.Entity
	Log     *zap.Logger

	Lite   func(*M) L
	Detail func(*M) D

	AllowList           bool
	AllowGet            bool
	AllowCreate         bool
	AllowCreateMultiple bool
	AllowUpdate         bool
	AllowRestore        bool
	AllowDelete         bool
}

// Crud registers the enabled operations. Toggles work by omission: a
// disabled operation is never registered, not hidden. Leaving every flag
// false enables everything (the common case).
func Crud[M any, C crud.CreateInput[M], U crud.UpdateInput, L, D any](cfg Config[M, C, U, L, D]) {
	if !cfg.AllowList && !cfg.AllowGet && !cfg.AllowCreate &&
		!cfg.AllowCreateMultiple && !cfg.AllowUpdate && !cfg.AllowRestore && !cfg.AllowDelete {
		cfg.AllowList, cfg.AllowGet, cfg.AllowCreate = true, true, true
		cfg.AllowCreateMultiple, cfg.AllowUpdate, cfg.AllowRestore, cfg.AllowDelete = true, true, true, true
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	cfg.Log = cfg.Log.With(zap.String("entity", string(cfg.Entity)))

	routes := []struct {
		enabled  bool
		register func()
	}{
		{cfg.AllowList, cfg.registerList},
		{cfg.AllowGet, cfg.registerGet},
		{cfg.AllowCreate, cfg.registerCreate},
		{cfg.AllowCreateMultiple, cfg.registerCreateMultiple},
		{cfg.AllowUpdate, cfg.registerUpdate},
		{cfg.AllowRestore, cfg.registerRestore},
		{cfg.AllowDelete, cfg.registerDelete},
	}
	for _, r := range routes {
		if r.enabled {
			r.register()
		}
	}
}

func boolQuery(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}

func (cfg *Config[M, C, U, L, D]) registerList() {
	cfg.Group.GET(cfg.Path, func(c *gin.Context) {
		includeRemoved := boolQuery(c, "include_removed")
		cfg.Log.Info("listing", zap.Bool("include_removed", includeRemoved))
		items, err := cfg.Service.GetAll(c.Request.Context(), includeRemoved)
		if err != nil {
			response.Err(c, err)
			return
		}
		out := make([]L, 0, len(items))
		for i := range items {
			out = append(out, cfg.Lite(&items[i]))
		}
		cfg.Log.Debug("listed", zap.Int("count", len(out)))
		c.JSON(http.StatusOK, out)
	})
}

func (cfg *Config[M, C, U, L, D]) registerGet() {
	cfg.Group.GET(cfg.Path+"/:id", func(c *gin.Context) {
		id := c.Param("id")
		includeRemoved := boolQuery(c, "include_removed")
		cfg.Log.Info("fetching", zap.String("id", id), zap.Bool("include_removed", includeRemoved))
		obj, err := cfg.Service.Get(c.Request.Context(), id, includeRemoved)
		if err != nil {
			response.Err(c, err)
			return
		}
		c.JSON(http.StatusOK, cfg.Detail(obj))
	})
}

func (cfg *Config[M, C, U, L, D]) registerCreate() {
	cfg.Group.POST(cfg.Path, func(c *gin.Context) {
		var in C
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Err(c, apperr.BadRequest(err.Error()))
			return
		}
		obj, err := cfg.createOne(c, in)
		if err != nil {
			response.Err(c, err)
			return
		}
		c.JSON(http.StatusCreated, cfg.Detail(obj))
	})
}

// registerCreateMultiple creates each item through the same single-create
// path, sequentially. The batch is NOT transactional: a failure partway
// leaves the earlier items committed, and later items are never attempted.
func (cfg *Config[M, C, U, L, D]) registerCreateMultiple() {
	cfg.Group.POST(cfg.Path+"/batch", func(c *gin.Context) {
		var ins []C
		if err := c.ShouldBindJSON(&ins); err != nil {
			response.Err(c, apperr.BadRequest(err.Error()))
			return
		}
		out := make([]D, 0, len(ins))
		for _, in := range ins {
			obj, err := cfg.createOne(c, in)
			if err != nil {
				response.Err(c, err)
				return
			}
			out = append(out, cfg.Detail(obj))
		}
		c.JSON(http.StatusCreated, out)
	})
}

func (cfg *Config[M, C, U, L, D]) registerUpdate() {
	cfg.Group.PUT(cfg.Path+"/:id", func(c *gin.Context) {
		id := c.Param("id")
		var in U
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Err(c, apperr.BadRequest(err.Error()))
			return
		}
		cfg.Log.Info("updating", zap.String("id", id))
		obj, err := cfg.Service.Update(c.Request.Context(), id, in)
		if err != nil {
			response.Err(c, err)
			return
		}
		cfg.Log.Debug("updated", zap.String("id", id))
		c.JSON(http.StatusOK, cfg.Detail(obj))
	})
}

func (cfg *Config[M, C, U, L, D]) registerRestore() {
	cfg.Group.PUT(cfg.Path+"/:id/restore", func(c *gin.Context) {
		id := c.Param("id")
		cfg.Log.Info("restoring", zap.String("id", id))
		obj, err := cfg.Service.Restore(c.Request.Context(), id)
		if err != nil {
			response.Err(c, err)
			return
		}
		cfg.Log.Debug("restored", zap.String("id", id))
		c.JSON(http.StatusOK, cfg.Detail(obj))
	})
}

func (cfg *Config[M, C, U, L, D]) registerDelete() {
	cfg.Group.DELETE(cfg.Path+"/:id", func(c *gin.Context) {
		id := c.Param("id")
		hardRemove := boolQuery(c, "hard_remove")
		cfg.Log.Info("deleting", zap.String("id", id), zap.Bool("hard_remove", hardRemove))
		obj, err := cfg.Service.Delete(c.Request.Context(), id, hardRemove)
		if err != nil {
			response.Err(c, err)
			return
		}
		cfg.Log.Debug("deleted", zap.String("id", id))
		c.JSON(http.StatusOK, cfg.Lite(obj))
	})
}

// createOne is the shared single-create path. A service returning neither
// object nor error is a broken contract and surfaces as a bad request.
func (cfg *Config[M, C, U, L, D]) createOne(c *gin.Context, in C) (*M, error) {
	cfg.Log.Info("creating")
	obj, err := cfg.Service.Create(c.Request.Context(), in)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, apperr.BadRequest("")
	}
	cfg.Log.Debug("created")
	return obj, nil
}
