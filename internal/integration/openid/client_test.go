package openid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-crud-starter/internal/apperr"
	"go-gin-crud-starter/internal/core/config"
)

type fakeProvider struct {
	srv *httptest.Server

	metadataHits   atomic.Int64
	userinfoStatus int
	userinfo       UserInfo
	endSession     string // "" omits the endpoint from metadata
	logoutStatus   int
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	p := &fakeProvider{
		userinfoStatus: http.StatusOK,
		userinfo:       UserInfo{Sub: "sub-1", PreferredUsername: "bob", Email: "bob@example.com"},
		logoutStatus:   http.StatusNoContent,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, _ *http.Request) {
		p.metadataHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Metadata{
			Issuer:             p.srv.URL,
			UserInfoEndpoint:   p.srv.URL + "/userinfo",
			EndSessionEndpoint: p.endSession,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, _ *http.Request) {
		if p.userinfoStatus != http.StatusOK {
			w.WriteHeader(p.userinfoStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p.userinfo)
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.NotEmpty(t, r.PostForm.Get("refresh_token"))
		w.WriteHeader(p.logoutStatus)
	})
	p.srv = httptest.NewServer(mux)
	t.Cleanup(p.srv.Close)
	return p
}

func (p *fakeProvider) client() *Client {
	return New(config.OpenID{
		MetadataURL: p.srv.URL + "/.well-known/openid-configuration",
		ClientID:    "test-client",
	}, nil)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	ae, ok := err.(*apperr.Error)
	require.True(t, ok, "expected *apperr.Error, got %T", err)
	return ae.Status
}

func TestUserInfoOK(t *testing.T) {
	p := newFakeProvider(t)
	c := p.client()

	info, err := c.UserInfo(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", info.Sub)
	assert.Equal(t, "bob", info.PreferredUsername)
}

func TestMetadataIsFetchedOnce(t *testing.T) {
	p := newFakeProvider(t)
	c := p.client()

	_, err := c.UserInfo(context.Background(), "tok")
	require.NoError(t, err)
	_, err = c.UserInfo(context.Background(), "tok2")
	require.NoError(t, err)

	assert.Equal(t, int64(1), p.metadataHits.Load())
}

func TestUserInfoStatusMapping(t *testing.T) {
	cases := []struct {
		provider int
		want     int
	}{
		{http.StatusUnauthorized, http.StatusUnauthorized},
		{http.StatusForbidden, http.StatusForbidden},
		{http.StatusInternalServerError, http.StatusBadGateway},
	}
	for _, tc := range cases {
		p := newFakeProvider(t)
		p.userinfoStatus = tc.provider
		_, err := p.client().UserInfo(context.Background(), "tok")
		assert.Equal(t, tc.want, statusOf(t, err))
	}
}

func TestUserInfoProviderDown(t *testing.T) {
	p := newFakeProvider(t)
	c := p.client()
	p.srv.Close()

	_, err := c.UserInfo(context.Background(), "tok")
	assert.Equal(t, http.StatusBadGateway, statusOf(t, err))
}

func TestLogoutOK(t *testing.T) {
	p := newFakeProvider(t)
	p.endSession = p.srv.URL + "/logout"

	assert.NoError(t, p.client().Logout(context.Background(), "refresh"))
}

func TestLogoutWithoutEndpointIsSoftNotice(t *testing.T) {
	p := newFakeProvider(t)

	err := p.client().Logout(context.Background(), "refresh")
	assert.Equal(t, http.StatusOK, statusOf(t, err), "missing end-session endpoint is a notice, not a failure")
}

func TestLogoutRejectionMapping(t *testing.T) {
	cases := []struct {
		provider int
		want     int
	}{
		{http.StatusBadRequest, http.StatusUnauthorized},
		{http.StatusUnauthorized, http.StatusUnauthorized},
		{http.StatusInternalServerError, http.StatusForbidden},
	}
	for _, tc := range cases {
		p := newFakeProvider(t)
		p.endSession = p.srv.URL + "/logout"
		p.logoutStatus = tc.provider
		err := p.client().Logout(context.Background(), "refresh")
		assert.Equal(t, tc.want, statusOf(t, err))
	}
}
