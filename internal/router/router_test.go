package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/onesteptask/config"
	"github.com/oksasatya/onesteptask/internal/container"
	"github.com/oksasatya/onesteptask/internal/infrastructure/memory"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
	"github.com/oksasatya/onesteptask/pkg/helpers"
	"github.com/oksasatya/onesteptask/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

// client drives the API through one in-process engine and keeps the
// session cookie between calls like a browser would.
type client struct {
	t      *testing.T
	engine *gin.Engine
	cookie *http.Cookie
}

func newClient(t *testing.T, engine *gin.Engine) *client {
	return &client{t: t, engine: engine}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.engine.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name != helpers.SessionCookieName {
			continue
		}
		if ck.MaxAge < 0 || ck.Value == "" {
			c.cookie = nil
		} else {
			c.cookie = ck
		}
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[map[string]any](t, rec)["message"].(string)
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		AppName:       "onesteptask-test",
		SessionSecret: "test-secret",
		SessionTTL:    24 * time.Hour,
		AdminUsername: "admin",
		AdminPassword: "admin123",
		AdminEmail:    "admin@onesteptask.com",
		AdminName:     "Admin User",

		DebugMetricsEnabled: true,
	}
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	sessions := memory.NewSessionStore()
	t.Cleanup(sessions.Close)

	c := container.New(container.Deps{
		Config:       cfg,
		Logger:       logger,
		Store:        memory.NewStore(),
		SessionStore: sessions,
	})
	c.Credentials.Cost = bcrypt.MinCost
	require.NoError(t, c.Seeder.EnsureDefaults(context.Background()))

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	reg := NewRegistry(r)
	reg.Use(middleware.Session(c.Sessions, c.JWT))
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

func taskBody(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"email":       name + "@example.com",
		"taskType":    "research",
		"deadline":    "2024-06-01",
		"description": "need help with " + name,
	}
}

func TestPublicTaskSubmission(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	rec := c.do(http.MethodPost, "/api/tasks", taskBody("ann"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[map[string]any](t, rec)
	assert.Equal(t, "pending", task["status"])
	assert.NotContains(t, task, "ownerUserId")
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))

	rec = c.do(http.MethodPost, "/api/tasks", map[string]any{"name": "ann"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, message(t, rec), "email is required")

	// the board is admin only
	rec = c.do(http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", message(t, rec))
}

func TestUserFlow(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	reg := map[string]any{"username": "ann", "password": "secret", "email": "ann@example.com", "name": "Ann"}
	rec := c.do(http.MethodPost, "/api/auth/register", reg)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[map[string]any](t, rec)
	assert.NotContains(t, user, "password")
	assert.Nil(t, c.cookie, "register does not sign in")

	rec = c.do(http.MethodPost, "/api/auth/register", reg)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username already exists", message(t, rec))

	rec = c.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "ann", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username or password", message(t, rec))

	rec = c.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "ann", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, c.cookie)
	assert.True(t, c.cookie.HttpOnly)

	rec = c.do(http.MethodGet, "/api/users/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann", decode[map[string]any](t, rec)["username"])

	// tasks submitted while signed in are owned by the user
	rec = c.do(http.MethodPost, "/api/tasks", taskBody("ann"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, user["id"], decode[map[string]any](t, rec)["ownerUserId"])

	rec = c.do(http.MethodGet, "/api/users/me/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	// a user session is not an admin session
	rec = c.do(http.MethodGet, "/api/admin/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = c.do(http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", message(t, rec))
	assert.Nil(t, c.cookie)

	rec = c.do(http.MethodGet, "/api/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStaleCookieAfterLogoutIsAnonymous(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	rec := c.do(http.MethodPost, "/api/auth/admin/login", map[string]any{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)
	stale := c.cookie

	c.do(http.MethodPost, "/api/auth/logout", nil)
	c.cookie = stale

	rec = c.do(http.MethodGet, "/api/admin/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginReplacesUserSession(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	c.do(http.MethodPost, "/api/auth/register", map[string]any{"username": "ann", "password": "secret", "email": "ann@example.com", "name": "Ann"})
	rec := c.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "ann", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	userCookie := c.cookie

	rec = c.do(http.MethodPost, "/api/auth/admin/login", map[string]any{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid admin credentials", message(t, rec))

	rec = c.do(http.MethodPost, "/api/auth/admin/login", map[string]any{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", decode[map[string]any](t, rec)["username"])

	rec = c.do(http.MethodGet, "/api/admin/me", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = c.do(http.MethodGet, "/api/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// the old user session was destroyed by the admin login
	c.cookie = userCookie
	rec = c.do(http.MethodGet, "/api/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminTaskBoard(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	for _, n := range []string{"alpha", "beta"} {
		rec := c.do(http.MethodPost, "/api/tasks", taskBody(n))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := c.do(http.MethodPost, "/api/auth/admin/login", map[string]any{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)
	adminID := decode[map[string]any](t, rec)["id"]

	rec = c.do(http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := decode[[]map[string]any](t, rec)
	require.Len(t, tasks, 2)
	assert.Equal(t, float64(1), tasks[0]["id"])

	rec = c.do(http.MethodPatch, "/api/tasks/2/status", map[string]any{"status": "in-progress"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "in-progress", decode[map[string]any](t, rec)["status"])

	rec = c.do(http.MethodPatch, "/api/tasks/2/status", map[string]any{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status", message(t, rec))

	rec = c.do(http.MethodGet, "/api/tasks?status=in-progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = c.do(http.MethodGet, "/api/tasks?status=nonsense", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())

	rec = c.do(http.MethodGet, "/api/tasks?search=ALPHA&status=in-progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[[]map[string]any](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, "alpha", found[0]["name"])

	rec = c.do(http.MethodPatch, "/api/tasks/1", map[string]any{"comments": "on it", "assignedAdminId": adminID, "status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decode[map[string]any](t, rec)
	assert.Equal(t, "on it", patched["comments"])
	assert.Equal(t, adminID, patched["assignedAdminId"])
	assert.Equal(t, "pending", patched["status"])

	rec = c.do(http.MethodPatch, "/api/tasks/1", map[string]any{"assignedAdminId": 999})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodGet, "/api/tasks/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = c.do(http.MethodGet, "/api/tasks/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", message(t, rec))

	rec = c.do(http.MethodDelete, "/api/tasks/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = c.do(http.MethodDelete, "/api/tasks/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestTestimonials(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	rec := c.do(http.MethodGet, "/api/testimonials", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 3)

	rec = c.do(http.MethodPost, "/api/testimonials", map[string]any{"name": "X", "position": "Y", "rating": 5, "content": "Z"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c.do(http.MethodPost, "/api/auth/admin/login", map[string]any{"username": "admin", "password": "admin123"})

	rec = c.do(http.MethodPost, "/api/testimonials", map[string]any{"name": "X", "position": "Y", "content": "Z"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "rating is required", message(t, rec))

	rec = c.do(http.MethodPost, "/api/testimonials", map[string]any{"name": "X", "position": "Y", "rating": 4, "content": "Z"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]any](t, rec)
	assert.Equal(t, false, created["isPublished"])

	// admins see drafts
	rec = c.do(http.MethodGet, "/api/testimonials", nil)
	assert.Len(t, decode[[]map[string]any](t, rec), 4)

	rec = c.do(http.MethodPatch, "/api/testimonials/4", map[string]any{"isPublished": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode[map[string]any](t, rec)["isPublished"])

	rec = c.do(http.MethodPatch, "/api/testimonials/40", map[string]any{"name": "n"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Testimonial not found", message(t, rec))

	rec = c.do(http.MethodDelete, "/api/testimonials/4", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = c.do(http.MethodDelete, "/api/testimonials/4", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPageContent(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	rec := c.do(http.MethodGet, "/api/content/home", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	home := decode[map[string]any](t, rec)
	assert.Equal(t, "home", home["pageSlug"])

	rec = c.do(http.MethodGet, "/api/content/pricing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Content not found", message(t, rec))

	rec = c.do(http.MethodPatch, "/api/content/1", map[string]any{"content": map[string]any{"hero": map[string]any{"title": "T"}}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c.do(http.MethodPost, "/api/auth/admin/login", map[string]any{"username": "admin", "password": "admin123"})

	rec = c.do(http.MethodPost, "/api/content", map[string]any{"pageSlug": "home", "content": map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Content for this page already exists", message(t, rec))

	rec = c.do(http.MethodPost, "/api/content", map[string]any{"pageSlug": "pricing", "content": map[string]any{"plans": []any{"basic"}}})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = c.do(http.MethodPatch, "/api/content/1", map[string]any{"content": map[string]any{"hero": map[string]any{"title": "T"}}})
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decode[map[string]any](t, rec)
	content := patched["content"].(map[string]any)
	assert.Equal(t, map[string]any{"title": "T"}, content["hero"])
	assert.Contains(t, content, "faq")

	rec = c.do(http.MethodGet, "/api/content", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)

	rec = c.do(http.MethodPatch, "/api/content/9", map[string]any{"content": map[string]any{}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitCompleteAndSearchScenario(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	body := taskBody("Bob")
	body["description"] = "Plan my gardening schedule with Alice"
	rec := c.do(http.MethodPost, "/api/tasks", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]any](t, rec)
	assert.Equal(t, float64(1), created["id"])
	assert.NotContains(t, created, "attachments")

	c.do(http.MethodPost, "/api/auth/admin/login", map[string]any{"username": "admin", "password": "admin123"})

	time.Sleep(2 * time.Millisecond)
	rec = c.do(http.MethodPatch, "/api/tasks/1/status", map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)
	done := decode[map[string]any](t, rec)
	createdAt, err := time.Parse(time.RFC3339Nano, done["createdAt"].(string))
	require.NoError(t, err)
	updatedAt, err := time.Parse(time.RFC3339Nano, done["updatedAt"].(string))
	require.NoError(t, err)
	assert.True(t, updatedAt.After(createdAt))

	for _, q := range []string{"gardening", "alice"} {
		rec = c.do(http.MethodGet, "/api/tasks?search="+q, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		found := decode[[]map[string]any](t, rec)
		require.Len(t, found, 1, q)
		assert.Equal(t, "completed", found[0]["status"])
	}
}

func TestUnknownAPIRouteIsJSON404(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	rec := c.do(http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", message(t, rec))

	rec = c.do(http.MethodGet, "/elsewhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDebugVarsRequireAdmin(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	rec := c.do(http.MethodGet, "/api/debug/vars", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c.do(http.MethodPost, "/api/auth/admin/login", map[string]any{"username": "admin", "password": "admin123"})
	rec = c.do(http.MethodGet, "/api/debug/vars", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	vars := decode[map[string]any](t, rec)
	assert.Contains(t, vars, "tasks_submitted")
	assert.Contains(t, vars, "logins_succeeded")
}

func TestUserSessionIsRejectedFromAdminRoutes(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	rec := c.do(http.MethodPost, "/api/tasks", taskBody("jo"))
	require.Equal(t, http.StatusCreated, rec.Code)

	c.do(http.MethodPost, "/api/auth/register", map[string]any{"username": "ann", "password": "secret", "email": "ann@example.com", "name": "Ann"})
	rec = c.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "ann", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)

	routes := []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/tasks", nil},
		{http.MethodGet, "/api/tasks/1", nil},
		{http.MethodPatch, "/api/tasks/1", map[string]any{"name": "hijacked"}},
		{http.MethodPatch, "/api/tasks/1/status", map[string]any{"status": "cancelled"}},
		{http.MethodDelete, "/api/tasks/1", nil},
		{http.MethodPost, "/api/testimonials", map[string]any{"name": "N", "position": "P", "rating": 5, "content": "C"}},
		{http.MethodPatch, "/api/testimonials/1", map[string]any{"isPublished": false}},
		{http.MethodDelete, "/api/testimonials/1", nil},
		{http.MethodGet, "/api/content", nil},
		{http.MethodPost, "/api/content", map[string]any{"pageSlug": "pricing", "content": map[string]any{}}},
		{http.MethodPatch, "/api/content/1", map[string]any{"content": map[string]any{}}},
		{http.MethodGet, "/api/users", nil},
		{http.MethodGet, "/api/users/1", nil},
	}
	for _, rt := range routes {
		rec := c.do(rt.method, rt.path, rt.body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", rt.method, rt.path)
	}

	// the session survives and nothing was changed
	rec = c.do(http.MethodGet, "/api/users/me", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	c.do(http.MethodPost, "/api/auth/admin/login", map[string]any{"username": "admin", "password": "admin123"})
	rec = c.do(http.MethodGet, "/api/tasks/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	task := decode[map[string]any](t, rec)
	assert.Equal(t, "jo", task["name"])
	assert.Equal(t, "pending", task["status"])
}

func TestAdminGetsUserByID(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	rec := c.do(http.MethodPost, "/api/auth/register", map[string]any{"username": "ann", "password": "secret", "email": "ann@example.com", "name": "Ann"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[map[string]any](t, rec)["id"]

	c.do(http.MethodPost, "/api/auth/admin/login", map[string]any{"username": "admin", "password": "admin123"})

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/users/%v", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode[map[string]any](t, rec)
	assert.Equal(t, "ann", user["username"])
	assert.NotContains(t, user, "password")

	rec = c.do(http.MethodGet, "/api/users/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", message(t, rec))

	rec = c.do(http.MethodGet, "/api/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
