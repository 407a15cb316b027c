package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/onesteptask/internal/application"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
	"github.com/oksasatya/onesteptask/pkg/helpers"
	"github.com/oksasatya/onesteptask/pkg/response"
	"github.com/oksasatya/onesteptask/pkg/validation"
)

const msgInternal = "Internal server error"

func statusFor(kind application.Kind) int {
	switch kind {
	case application.KindValidation, application.KindConflict:
		return http.StatusBadRequest
	case application.KindAuthentication, application.KindAuthorization:
		return http.StatusUnauthorized
	case application.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"message": ...}. Errors that are not
// application errors are logged and hidden behind a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	kind := application.KindOf(err)
	status := statusFor(kind)
	if status == http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString(middleware.CtxRequestIDKey),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		})
		response.Error(c, status, msgInternal)
		return
	}
	response.Error(c, status, err.Error())
}

// bindJSON decodes the body into req and replies 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		msg := validation.Message(err)
		if msg == "" {
			msg = "Invalid request body"
		}
		response.Error(c, http.StatusBadRequest, msg)
		return false
	}
	return true
}

// pathID parses the :id route parameter and replies 400 when it is not a
// positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
