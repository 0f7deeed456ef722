// Package openid talks to an OpenID-Connect provider: discovery, userinfo
// and RP-initiated logout. The rest of the system treats it as the opaque
// authenticator collaborator — it returns a verified identity or fails.
package openid

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"go-gin-crud-starter/internal/apperr"
	"go-gin-crud-starter/internal/core/cache"
	"go-gin-crud-starter/internal/core/config"
)

// Metadata is the subset of the provider discovery document we consume.
type Metadata struct {
	Issuer             string `json:"issuer"`
	UserInfoEndpoint   string `json:"userinfo_endpoint"`
	EndSessionEndpoint string `json:"end_session_endpoint"`
	JWKSURI            string `json:"jwks_uri"`
}

// UserInfo is the provider's view of the authenticated user.
type UserInfo struct {
	Sub               string `json:"sub"`
	PreferredUsername string `json:"preferred_username"`
	Name              string `json:"name"`
	GivenName         string `json:"given_name"`
	FamilyName        string `json:"family_name"`
	Email             string `json:"email"`
	EmailVerified     bool   `json:"email_verified"`
}

type Client struct {
	http         *resty.Client
	metadataURL  string
	clientID     string
	clientSecret string

	cache *cache.Cache // nil disables userinfo caching
	ttl   time.Duration

	mu   sync.Mutex
	meta *Metadata
}

func New(cfg config.OpenID, c *cache.Cache) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ttl := time.Duration(cfg.UserInfoTTLSec) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Client{
		http:         resty.New().SetTimeout(timeout),
		metadataURL:  cfg.MetadataURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		cache:        c,
		ttl:          ttl,
	}
}

func (c *Client) metadata(ctx context.Context) (*Metadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.meta != nil {
		return c.meta, nil
	}
	var meta Metadata
	resp, err := c.http.R().SetContext(ctx).SetResult(&meta).Get(c.metadataURL)
	if err != nil {
		return nil, apperr.External("OIDC provider unreachable")
	}
	if resp.IsError() {
		return nil, apperr.External("OIDC provider rejected the metadata request")
	}
	c.meta = &meta
	return c.meta, nil
}

// UserInfo resolves the bearer token to the provider's user record.
// Responses are cached briefly keyed by a hash of the token, so a burst of
// requests from one session costs one provider round trip.
func (c *Client) UserInfo(ctx context.Context, token string) (*UserInfo, error) {
	if c.cache == nil {
		return c.fetchUserInfo(ctx, token)
	}
	key := "oidc:userinfo:" + hashToken(token)
	return cache.GetOrLoadJSON(c.cache, ctx, key, c.ttl, func(ctx context.Context) (*UserInfo, error) {
		return c.fetchUserInfo(ctx, token)
	})
}

func (c *Client) fetchUserInfo(ctx context.Context, token string) (*UserInfo, error) {
	meta, err := c.metadata(ctx)
	if err != nil {
		return nil, err
	}
	var info UserInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&info).
		Get(meta.UserInfoEndpoint)
	if err != nil {
		return nil, apperr.External("OIDC provider unreachable")
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		return &info, nil
	case http.StatusUnauthorized:
		return nil, apperr.Unauthorized("Invalid or expired token")
	case http.StatusForbidden:
		return nil, apperr.PermissionDenied("Token lacks required permissions")
	default:
		return nil, apperr.External("OIDC provider rejected the request")
	}
}

// Logout invalidates the session at the provider. A provider that exposes
// no end-session endpoint yields a soft notice, not a failure.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	meta, err := c.metadata(ctx)
	if err != nil {
		return err
	}
	if meta.EndSessionEndpoint == "" {
		return apperr.SoftValidation("Provider exposes no end session endpoint; session not revoked.")
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"refresh_token": refreshToken,
		}).
		Post(meta.EndSessionEndpoint)
	if err != nil {
		return apperr.External("OIDC provider unreachable")
	}
	switch resp.StatusCode() {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusBadRequest:
		return apperr.Unauthorized("Invalid or missing credentials for logout.")
	default:
		return apperr.PermissionDenied("Unexpected error during logout")
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
