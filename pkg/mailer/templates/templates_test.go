package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/onesteptask/config"
)

var testCfg = &config.Config{AppName: "onesteptask", CompanyName: "OneStepTask", SupportURL: "https://onesteptask.example/support"}

func sampleTask() TaskInfo {
	return TaskInfo{
		ID:          7,
		Name:        "Ann <admin>",
		Email:       "ann@example.com",
		TaskType:    "research",
		Deadline:    "2024-06-01",
		Description: "market study",
		Status:      "pending",
	}
}

func TestRenderTaskReceived(t *testing.T) {
	data := NewTaskReceivedData(testCfg, sampleTask(), WithTime(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)))

	subject, text, html, err := Render(TaskReceived, data)
	require.NoError(t, err)
	assert.Equal(t, "OneStepTask: we received your task #7", subject)
	assert.Contains(t, text, "Ann <admin>")
	assert.Contains(t, text, "market study")
	// html output is escaped
	assert.Contains(t, html, "Ann &lt;admin&gt;")
	assert.NotContains(t, html, "<admin>")
}

func TestRenderTaskStatusChanged(t *testing.T) {
	task := sampleTask()
	task.Status = "in-progress"
	data := NewTaskStatusChangedData(testCfg, task, "pending")

	subject, text, _, err := Render(TaskStatusChanged, data)
	require.NoError(t, err)
	assert.Equal(t, "Your task #7 is now In Progress", subject)
	assert.Contains(t, text, "from Pending to In Progress")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", map[string]any{})
	assert.Error(t, err)
}

func TestFuncs(t *testing.T) {
	assert.Equal(t, "In Progress", statusLabel("in-progress"))
	assert.Equal(t, "", statusLabel(nil))
	assert.Equal(t, "fallback", defaultFn("fallback", "  "))
	assert.Equal(t, "fallback", defaultFn("fallback", nil))
	assert.Equal(t, "fallback", defaultFn("fallback", 0))
	assert.Equal(t, "x", defaultFn("fallback", "x"))
}
