package apperr

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMessages(t *testing.T) {
	cases := []struct {
		name   string
		err    *Error
		status int
		msg    string
	}{
		{"bad request", BadRequest(""), http.StatusBadRequest, "An error occurred."},
		{"soft validation", SoftValidation(""), http.StatusOK, "Soft validation error that doesn't interrupt flow."},
		{"unauthorized", Unauthorized(""), http.StatusUnauthorized, "There's some kind of authorization problem."},
		{"permission denied", PermissionDenied(""), http.StatusForbidden, "User does not have the required permissions."},
		{"conflict", Conflict(""), http.StatusConflict, "Conflict: resource already exists."},
		{"not implemented", NotImplemented(), http.StatusNotImplemented, "Method not implemented."},
		{"external", External(""), http.StatusBadGateway, "External api call failed."},
		{"internal", Internal(""), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.msg, tc.err.Message)
			assert.Equal(t, tc.msg, tc.err.Error())
		})
	}
}

func TestCustomMessageWins(t *testing.T) {
	assert.Equal(t, "nope", BadRequest("nope").Message)
	assert.Equal(t, "who are you", Unauthorized("who are you").Message)
}

func TestNotFoundCarriesIdentity(t *testing.T) {
	err := NotFound(EntityUser, "abc123")

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "Entity User with id abc123 was not found.", err.Message)

	p := err.Payload()
	assert.Equal(t, "User", p["entity"])
	assert.Equal(t, "abc123", p["entity_id"])
}

func TestMethodNotAllowed(t *testing.T) {
	err := MethodNotAllowed(http.MethodPatch, "/api/v1/users/1")
	assert.Equal(t, http.StatusMethodNotAllowed, err.Status)
	assert.Equal(t, "Method PATCH is not allowed for /api/v1/users/1", err.Message)
}

func TestWithAndPayload(t *testing.T) {
	err := BadRequest("boom").With("field", "email").With("value", 42)
	require.NotNil(t, err.Extra)

	p := err.Payload()
	assert.Equal(t, "boom", p["message"])
	assert.Equal(t, "email", p["field"])
	assert.Equal(t, 42, p["value"])
}
