package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/onesteptask/internal/interface/http"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
)

// UserModule exposes the current identity and the user directory.
// User: GET /api/users/me, GET /api/users/me/tasks
// Admin: GET /api/admin/me, GET /api/users, GET /api/users/:id
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	user := rg.Group("/users/me")
	user.Use(middleware.RequireUser())
	{
		user.GET("", m.Handler.Me)
		user.GET("/tasks", m.Handler.MyTasks)
	}

	rg.GET("/admin/me", middleware.RequireAdmin(), m.Handler.AdminMe)
	rg.GET("/users", middleware.RequireAdmin(), m.Handler.List)
	rg.GET("/users/:id", middleware.RequireAdmin(), m.Handler.Get)
}
