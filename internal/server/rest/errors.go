package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps an error to the HTTP status and the body message sent to the
// client. Auth failures share one message.
func statusFor(err error) (int, string) {
	switch {
	case common.IsAuthFailure(err):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrPermissionDenied):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, common.ErrStore):
		return http.StatusServiceUnavailable, "service unavailable"
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict, "already exists"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not found"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func abortWithError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
