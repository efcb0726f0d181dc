package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/interface/middleware"
	"github.com/oksasatya/courseitda/pkg/response"
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an error envelope. Unexpected errors are logged and hidden from the client.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, status, "internal error", nil)
		return
	}
	var appErr *application.Error
	msg := err.Error()
	if errors.As(err, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	response.Error[any](c, status, msg, gin.H{"kind": kindOf(err)})
}

func kindOf(err error) string {
	var appErr *application.Error
	if errors.As(err, &appErr) {
		return string(appErr.Kind)
	}
	return ""
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}
