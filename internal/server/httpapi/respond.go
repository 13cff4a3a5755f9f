package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tzetzo/task-manager-api/internal/common"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrEmailAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, common.ErrUnableToLogin), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// renderError maps a domain error to a response. Internal failures are
// logged here, at the edge, and never leak their details to the client.
func (s *Server) renderError(c *gin.Context, err error) {
	status := errorStatus(err)

	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	msg := err.Error()
	// drop the sentinel prefix from wrapped validation errors
	msg = strings.TrimPrefix(msg, common.ErrValidation.Error()+": ")

	c.JSON(status, gin.H{"error": msg})
}
