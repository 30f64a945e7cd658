package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"souqd/internal/middleware"
	appErr "souqd/internal/pkg/errors"
	"souqd/internal/pkg/response"
)

func principal(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextEmailKey)
	email, _ := value.(string)
	return email
}

// handleError maps the service sentinels onto the failure envelope. Internal
// errors are logged and never leak details to the client.
func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Fail(c, http.StatusUnauthorized, "")
	case errors.Is(err, appErr.ErrForbidden):
		response.Fail(c, http.StatusForbidden, messageOf(err))
	case errors.Is(err, appErr.ErrNotFound):
		response.Fail(c, http.StatusNotFound, messageOf(err))
	case errors.Is(err, appErr.ErrConflict):
		response.Fail(c, http.StatusConflict, messageOf(err))
	case errors.Is(err, appErr.ErrInvalid):
		response.Fail(c, http.StatusBadRequest, messageOf(err))
	default:
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, "internal error")
	}
}

// messageOf strips the sentinel suffix from a wrapped error so the client
// sees "email exists" rather than "email exists: conflict".
func messageOf(err error) string {
	msg := err.Error()
	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		suffix := ": " + unwrapped.Error()
		if len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
			return msg[:len(msg)-len(suffix)]
		}
	}
	return msg
}
