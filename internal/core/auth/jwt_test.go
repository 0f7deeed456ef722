package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "test", TTL: time.Hour}

	tok, err := j.Issue("u1", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "test", TTL: time.Hour}
	tok, err := j.Issue("u1", RoleUser)
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("different"), Issuer: "test", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "someone-else", TTL: time.Hour}
	tok, err := j.Issue("u1", RoleUser)
	require.NoError(t, err)

	mine := &JWTer{Secret: []byte("s3cret"), Issuer: "test", TTL: time.Hour}
	_, err = mine.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpiredBeyondLeeway(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "test", TTL: -2 * time.Minute}
	tok, err := j.Issue("u1", RoleUser)
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.Error(t, err)
}
