package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/onesteptask/internal/application"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
	"github.com/oksasatya/onesteptask/pkg/response"
)

type TaskHandler struct {
	Tasks  *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(tasks *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Tasks: tasks, Logger: logger}
}

type submitTaskRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	TaskType    string  `json:"taskType" binding:"required"`
	Deadline    string  `json:"deadline" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Attachments *string `json:"attachments"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// patchTaskRequest has no status field; a status in the body is ignored.
type patchTaskRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	TaskType        *string `json:"taskType"`
	Deadline        *string `json:"deadline"`
	Description     *string `json:"description"`
	Attachments     *string `json:"attachments"`
	Comments        *string `json:"comments"`
	AssignedAdminID *int64  `json:"assignedAdminId"`
}

// Submit POST /api/tasks
func (h *TaskHandler) Submit(c *gin.Context) {
	var req submitTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	var owner *int64
	if id := middleware.IdentityFrom(c); id.IsUser() {
		uid := id.SubjectID
		owner = &uid
	}
	t, err := h.Tasks.Submit(c.Request.Context(), application.SubmitTaskInput{
		Name:        req.Name,
		Email:       req.Email,
		TaskType:    req.TaskType,
		Deadline:    req.Deadline,
		Description: req.Description,
		Attachments: req.Attachments,
	}, owner)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, t)
}

// List GET /api/tasks?search=&status=
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context(), application.TaskQuery{
		Search: c.Query("search"),
		Status: c.Query("status"),
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, tasks)
}

// Get GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, t)
}

// SetStatus PATCH /api/tasks/:id/status
func (h *TaskHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Tasks.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, t)
}

// Patch PATCH /api/tasks/:id
func (h *TaskHandler) Patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req patchTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Tasks.Patch(c.Request.Context(), id, application.TaskPatch{
		Name:            req.Name,
		Email:           req.Email,
		TaskType:        req.TaskType,
		Deadline:        req.Deadline,
		Description:     req.Description,
		Attachments:     req.Attachments,
		Comments:        req.Comments,
		AssignedAdminID: req.AssignedAdminID,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, t)
}

// Delete DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	removed, err := h.Tasks.Remove(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if !removed {
		writeError(c, h.Logger, application.ErrTaskNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
