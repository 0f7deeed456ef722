package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-gin-crud-starter/internal/apperr"
	coreauth "go-gin-crud-starter/internal/core/auth"
	mdw "go-gin-crud-starter/internal/transport/http/middleware"
	"go-gin-crud-starter/internal/transport/http/response"
)

// NewAdminEngine builds the backoffice: locally issued admin tokens only,
// regardless of the user-facing auth provider.
func NewAdminEngine(d *Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.Err(c, apperr.MethodNotAllowed(c.Request.Method, c.Request.URL.Path))
	})

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(d.JWTer, coreauth.RoleAdmin))

	MountAllAdmin(admin)
	mountAdminActions(admin, d)

	return r
}
