package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/onesteptask/internal/application"
	"github.com/oksasatya/onesteptask/pkg/response"
)

// RequireUser lets through only requests carrying a UserSession.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).IsUser() {
			response.Error(c, http.StatusUnauthorized, application.ErrUnauthorized.Message)
			return
		}
		c.Next()
	}
}

// RequireAdmin lets through only requests carrying an AdminSession. A user
// session gets 401 as well, not 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).IsAdmin() {
			response.Error(c, http.StatusUnauthorized, application.ErrUnauthorized.Message)
			return
		}
		c.Next()
	}
}
