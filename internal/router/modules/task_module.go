package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/onesteptask/internal/interface/http"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
)

// TaskModule serves task submission and the admin task board.
// Public: POST /api/tasks
// Admin: GET /api/tasks, GET/PATCH/DELETE /api/tasks/:id,
// PATCH /api/tasks/:id/status
type TaskModule struct {
	Handler     *handlers.TaskHandler
	Redis       *redis.Client
	SubmitLimit int
	Bypass      middleware.AllowFunc
}

func NewTaskModule(h *handlers.TaskHandler, rdb *redis.Client, submitLimit int, bypass middleware.AllowFunc) *TaskModule {
	return &TaskModule{Handler: h, Redis: rdb, SubmitLimit: submitLimit, Bypass: bypass}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	submitLimiter := middleware.RateLimit(m.Redis, m.SubmitLimit, time.Minute, middleware.KeyByIPAndPath(), m.Bypass)
	rg.POST("/tasks", submitLimiter, m.Handler.Submit)

	admin := rg.Group("/tasks")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("", m.Handler.List)
		admin.GET("/:id", m.Handler.Get)
		admin.PATCH("/:id", m.Handler.Patch)
		admin.PATCH("/:id/status", m.Handler.SetStatus)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
