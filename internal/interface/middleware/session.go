package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/onesteptask/internal/application"
	"github.com/oksasatya/onesteptask/internal/domain/entity"
	"github.com/oksasatya/onesteptask/pkg/helpers"
)

const (
	CtxIdentityKey  = "identity"
	CtxSessionIDKey = "session_id"
)

// Session resolves the session cookie to exactly one identity and stores it
// in the Gin context. Requests without a valid session continue as
// Anonymous.
func Session(sessions *application.Sessions, tokens *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := entity.Anonymous()
		if raw, err := c.Cookie(helpers.SessionCookieName); err == nil && raw != "" {
			if claims, err := tokens.ParseSessionToken(raw); err == nil {
				identity = sessions.Resolve(c.Request.Context(), claims.SessionID)
				if identity.Kind != entity.IdentityAnonymous {
					c.Set(CtxSessionIDKey, claims.SessionID)
				}
			}
		}
		c.Set(CtxIdentityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity attached by Session, Anonymous if none.
func IdentityFrom(c *gin.Context) entity.Identity {
	if v, ok := c.Get(CtxIdentityKey); ok {
		if id, ok := v.(entity.Identity); ok {
			return id
		}
	}
	return entity.Anonymous()
}

// SessionIDFrom returns the id of the live session, or "".
func SessionIDFrom(c *gin.Context) string {
	return c.GetString(CtxSessionIDKey)
}
