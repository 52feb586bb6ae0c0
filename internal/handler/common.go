package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "immigration-crm/internal/errors"
	"immigration-crm/pkg/response"
)

// respondError resolves a domain error to its HTTP status and writes the
// standard envelope.
func respondError(c *gin.Context, err error) {
	httpErr := apperrors.MapErrorToHTTP(err)
	c.JSON(httpErr.StatusCode, response.Error(httpErr.StatusCode, httpErr.Message))
}

// respondBindError reports a malformed or incomplete request payload.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}
