package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/conduit-api/internal/errs"
)

// renderError writes err as a JSON response. Typed errors carry their own
// status and body; anything else is logged and reported as a 500.
func renderError(c *gin.Context, log zerolog.Logger, err error) {
	var e *errs.Error
	if errors.As(err, &e) {
		c.JSON(e.Status, e.Body())
		return
	}

	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("request_id", requestID(c)).
		Msg("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

// bindJSON decodes the request body into v, rendering a 422 on malformed input
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errs.Validation("request", "is malformed").Body())
		return false
	}
	return true
}
