package helpers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/onesteptask/pkg/mailer"
	mailtpl "github.com/oksasatya/onesteptask/pkg/mailer/templates"
)

func TestSessionToken(t *testing.T) {
	m := NewJWTManager("secret", "onesteptask")

	tok, err := m.GenerateSessionToken("sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	claims, err := m.ParseSessionToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "onesteptask", claims.Issuer)

	expired, err := m.GenerateSessionToken("sid-2", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = m.ParseSessionToken(expired)
	assert.Error(t, err)

	_, err = NewJWTManager("other", "x").ParseSessionToken(tok)
	assert.Error(t, err)

	empty, err := m.GenerateSessionToken("", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = m.ParseSessionToken(empty)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPasswordCost("admin123", 4)
	require.NoError(t, err)
	assert.True(t, CompareHashAndPassword(hash, "admin123"))
	assert.False(t, CompareHashAndPassword(hash, "admin124"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "admin123"))
}

func TestCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCookie("", false)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	m.SetSession(c, "tok", time.Now().Add(time.Hour))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.InDelta(t, 3600, cookies[0].MaxAge, 2)

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	m.Clear(c)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "app", "production", "warn")
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	LogError(logger, "boom", errors.New("bad"), logrus.Fields{"request_id": "r1"})
	assert.Contains(t, buf.String(), `"error":"bad"`)
	assert.Contains(t, buf.String(), `"request_id":"r1"`)

	dev := newLogger(&buf, "app", "development", "")
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())

	// nil loggers are ignored
	LogError(nil, "x", nil, nil)
	LogInfo(nil, "x", nil)
}

func TestEmailJobMapping(t *testing.T) {
	job := &mailer.EmailJob{To: "ann@example.com", Template: mailtpl.TaskStatusChanged}
	EnsureRecipientAndEmail(job)
	assert.Equal(t, "ann@example.com", job.Data["Email"])
	assert.Equal(t, "ann@example.com", job.Data["RecipientEmail"])
	assert.Equal(t, "Your task status changed", SubjectFor(job))

	other := &mailer.EmailJob{Data: map[string]any{"Type": mailtpl.TaskReceived}}
	assert.Equal(t, "We received your task", SubjectFor(other))
	assert.Equal(t, "Notification", SubjectFor(&mailer.EmailJob{}))
}
