package apperr

import (
	"fmt"
	"net/http"
)

// Entity names a record kind for error messages ("User", ...).
type Entity string

const EntityUser Entity = "User"

// Error is the one error shape that crosses the HTTP boundary: a message,
// an HTTP status and an open set of extra context fields that end up in the
// response payload next to "message".
type Error struct {
	Status  int
	Message string
	Extra   map[string]any
}

func (e *Error) Error() string { return e.Message }

// With attaches an extra context field and returns the error for chaining.
func (e *Error) With(key string, val any) *Error {
	if e.Extra == nil {
		e.Extra = map[string]any{}
	}
	e.Extra[key] = val
	return e
}

// Payload renders the wire shape: {"message": ..., ...extra fields}.
func (e *Error) Payload() map[string]any {
	out := map[string]any{"message": e.Message}
	for k, v := range e.Extra {
		out[k] = v
	}
	return out
}

func newErr(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// BadRequest is the default kind.
func BadRequest(msg string) *Error {
	if msg == "" {
		msg = "An error occurred."
	}
	return newErr(http.StatusBadRequest, msg)
}

// SoftValidation succeeds on the wire (200) but still travels the error
// channel: a non-fatal notice.
func SoftValidation(msg string) *Error {
	if msg == "" {
		msg = "Soft validation error that doesn't interrupt flow."
	}
	return newErr(http.StatusOK, msg)
}

func NotFound(entity Entity, id string) *Error {
	e := newErr(http.StatusNotFound, fmt.Sprintf("Entity %s with id %s was not found.", entity, id))
	return e.With("entity", string(entity)).With("entity_id", id)
}

func Unauthorized(msg string) *Error {
	if msg == "" {
		msg = "There's some kind of authorization problem."
	}
	return newErr(http.StatusUnauthorized, msg)
}

func PermissionDenied(msg string) *Error {
	if msg == "" {
		msg = "User does not have the required permissions."
	}
	return newErr(http.StatusForbidden, msg)
}

func MethodNotAllowed(method, path string) *Error {
	return newErr(http.StatusMethodNotAllowed,
		fmt.Sprintf("Method %s is not allowed for %s", method, path))
}

func Conflict(msg string) *Error {
	if msg == "" {
		msg = "Conflict: resource already exists."
	}
	return newErr(http.StatusConflict, msg)
}

func NotImplemented() *Error {
	return newErr(http.StatusNotImplemented, "Method not implemented.")
}

// External marks a failed call to an upstream dependency (OIDC provider etc).
func External(msg string) *Error {
	if msg == "" {
		msg = "External api call failed."
	}
	return newErr(http.StatusBadGateway, msg)
}

// Internal never leaks detail to the client; the cause goes to the log only.
func Internal(msg string) *Error {
	if msg == "" {
		msg = "Internal Server Error"
	}
	return newErr(http.StatusInternalServerError, msg)
}
