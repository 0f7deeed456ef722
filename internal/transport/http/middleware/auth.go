package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-crud-starter/internal/apperr"
	coreauth "go-gin-crud-starter/internal/core/auth"
	"go-gin-crud-starter/internal/transport/http/response"
)

const keyIdentity = "identity"

// Identity is the verified caller resolved by an Authenticator. SectionHead
// is the privilege flag consulted by guarded routes.
type Identity struct {
	ID          string
	Username    string
	SectionHead bool
}

// Authenticator turns a bearer credential into a verified identity, or fails
// with Unauthorized / PermissionDenied. Implementations live with the auth
// providers; routing only consumes the result.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

func CurrentUser(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			response.Err(c, apperr.Unauthorized("missing bearer token"))
			return
		}
		id, err := a.Authenticate(c.Request.Context(), strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			response.Err(c, err)
			return
		}
		c.Set(keyIdentity, id)
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(keyIdentity)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok
}

// RequireSectionHead guards routes reserved for privileged users.
func RequireSectionHead() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			response.Err(c, apperr.Unauthorized(""))
			return
		}
		if !id.SectionHead {
			response.Err(c, apperr.PermissionDenied("Permission Denied."))
			return
		}
		c.Next()
	}
}

// AuthJWT validates a locally issued token and optionally requires a role.
// Used by the admin backoffice.
func AuthJWT(j *coreauth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			response.Err(c, apperr.Unauthorized("missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			response.Err(c, apperr.Unauthorized("invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			response.Err(c, apperr.PermissionDenied(""))
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}
