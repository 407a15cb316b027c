package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/onesteptask/internal/application"
	"github.com/oksasatya/onesteptask/internal/domain/entity"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
	"github.com/oksasatya/onesteptask/pkg/helpers"
	"github.com/oksasatya/onesteptask/pkg/response"
)

type AuthHandler struct {
	Auth    *application.AuthService
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, jwt *helpers.JWTManager, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, JWT: jwt, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Auth.Register(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, u)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	u, sess, err := h.Auth.LoginUser(c.Request.Context(), middleware.SessionIDFrom(c), req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if !h.issue(c, sess) {
		return
	}
	response.JSON(c, http.StatusOK, u)
}

// AdminLogin POST /api/auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	a, sess, err := h.Auth.LoginAdmin(c.Request.Context(), middleware.SessionIDFrom(c), req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if !h.issue(c, sess) {
		return
	}
	response.JSON(c, http.StatusOK, a)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), middleware.SessionIDFrom(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	response.Message(c, http.StatusOK, "Logged out successfully")
}

// issue signs the session id into the session cookie.
func (h *AuthHandler) issue(c *gin.Context, sess entity.Session) bool {
	token, err := h.JWT.GenerateSessionToken(sess.ID, sess.ExpiresAt)
	if err != nil {
		writeError(c, h.Logger, err)
		return false
	}
	h.Cookies.SetSession(c, token, sess.ExpiresAt)
	return true
}
