package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/onesteptask/internal/application"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
	"github.com/oksasatya/onesteptask/pkg/response"
)

type UserHandler struct {
	Auth   *application.AuthService
	Users  *application.UserService
	Tasks  *application.TaskService
	Logger *logrus.Logger
}

func NewUserHandler(auth *application.AuthService, users *application.UserService, tasks *application.TaskService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Auth: auth, Users: users, Tasks: tasks, Logger: logger}
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Auth.CurrentUser(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

// AdminMe GET /api/admin/me
func (h *UserHandler) AdminMe(c *gin.Context) {
	a, err := h.Auth.CurrentAdmin(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.Users.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

// MyTasks GET /api/users/me/tasks
func (h *UserHandler) MyTasks(c *gin.Context) {
	tasks, err := h.Tasks.ListForOwner(c.Request.Context(), middleware.IdentityFrom(c).SubjectID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, tasks)
}
