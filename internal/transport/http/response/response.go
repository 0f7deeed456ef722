// Package response renders domain errors as the external wire contract:
// a status code from the taxonomy plus {"message": ..., extra fields}.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-gin-crud-starter/internal/apperr"
)

// Err maps any error to the taxonomy and aborts the request. Storage
// integrity violations are reclassified here, at the outermost boundary;
// anything unrecognized becomes an opaque 500 so no internal detail leaks.
func Err(c *gin.Context, err error) {
	var ae *apperr.Error
	switch {
	case errors.As(err, &ae):
	case errors.Is(err, gorm.ErrRecordNotFound):
		ae = &apperr.Error{Status: http.StatusNotFound, Message: "Entity not found."}
	case apperr.IsIntegrity(err):
		ae = apperr.FromStorage(err)
	default:
		ae = apperr.Internal("")
	}
	_ = c.Error(err) // keep the cause on the gin error stack for the access log
	c.AbortWithStatusJSON(ae.Status, ae.Payload())
}
