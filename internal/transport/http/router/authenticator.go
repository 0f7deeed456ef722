package router

import (
	"context"

	"go-gin-crud-starter/internal/apperr"
	coreauth "go-gin-crud-starter/internal/core/auth"
	"go-gin-crud-starter/internal/feature/user"
	"go-gin-crud-starter/internal/integration/openid"
	mdw "go-gin-crud-starter/internal/transport/http/middleware"
)

// openIDAuthenticator verifies bearer tokens against the provider's
// userinfo endpoint. The subject must already exist locally (login syncs it).
type openIDAuthenticator struct {
	oidc  *openid.Client
	users *user.Service
}

func (a *openIDAuthenticator) Authenticate(ctx context.Context, token string) (*mdw.Identity, error) {
	info, err := a.oidc.UserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := a.users.Get(ctx, info.Sub, false)
	if err != nil {
		return nil, err
	}
	return &mdw.Identity{ID: u.ID, Username: u.Username, SectionHead: u.SectionHead}, nil
}

// localAuthenticator validates the HS256 tokens issued by /auth/login when
// the provider is "local".
type localAuthenticator struct {
	jwter *coreauth.JWTer
	users *user.Service
}

func (a *localAuthenticator) Authenticate(ctx context.Context, token string) (*mdw.Identity, error) {
	claims, err := a.jwter.Parse(token)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}
	u, err := a.users.Get(ctx, claims.UID, false)
	if err != nil {
		return nil, err
	}
	return &mdw.Identity{ID: u.ID, Username: u.Username, SectionHead: u.SectionHead}, nil
}
