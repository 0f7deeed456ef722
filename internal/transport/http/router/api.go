package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-crud-starter/internal/apperr"
	coreauth "go-gin-crud-starter/internal/core/auth"
	"go-gin-crud-starter/internal/core/config"
	"go-gin-crud-starter/internal/feature/user"
	"go-gin-crud-starter/internal/integration/openid"
	mdw "go-gin-crud-starter/internal/transport/http/middleware"
	"go-gin-crud-starter/internal/transport/http/response"
)

// Deps bundles what the engines need. OpenID stays nil when the provider
// is "local".
type Deps struct {
	Log    *zap.Logger
	Cfg    *config.Config
	DB     *gorm.DB
	JWTer  *coreauth.JWTer
	OpenID *openid.Client
	Users  *user.Service
}

func (d *Deps) authenticator() mdw.Authenticator {
	if d.Cfg.Auth.Provider == "openid" {
		return &openIDAuthenticator{oidc: d.OpenID, users: d.Users}
	}
	return &localAuthenticator{jwter: d.JWTer, users: d.Users}
}

func NewAPIEngine(d *Deps) *gin.Engine {
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
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	// A wrong verb on a real path is 405, not 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.Err(c, apperr.MethodNotAllowed(c.Request.Method, c.Request.URL.Path))
	})

	api := r.Group("/api/v1")

	// Session endpoints are public by definition.
	mountAuthActions(api, d)

	// Everything else sits behind the configured authenticator.
	authed := api.Group("")
	authed.Use(mdw.CurrentUser(d.authenticator()))
	MountAllAPI(authed)

	return r
}
