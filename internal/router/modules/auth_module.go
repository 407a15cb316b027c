package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/onesteptask/internal/interface/http"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
)

// AuthModule serves registration, both logins and logout.
// Public: POST /api/auth/register, POST /api/auth/login,
// POST /api/auth/admin/login, POST /api/auth/logout
type AuthModule struct {
	Handler    *handlers.AuthHandler
	Redis      *redis.Client
	LoginLimit int
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client, loginLimit int) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb, LoginLimit: loginLimit}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// per IP and route, so user and admin logins count separately
	loginLimiter := middleware.RateLimit(m.Redis, m.LoginLimit, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", loginLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/admin/login", loginLimiter, m.Handler.AdminLogin)
	rg.POST("/auth/logout", m.Handler.Logout)
}
