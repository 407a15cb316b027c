package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/onesteptask/config"
	"github.com/oksasatya/onesteptask/pkg/mailer"
	mailtpl "github.com/oksasatya/onesteptask/pkg/mailer/templates"
)

func TestPrepareRendersTemplate(t *testing.T) {
	cfg := &config.Config{CompanyName: "OneStepTask"}
	job := &mailer.EmailJob{
		To:       "ann@example.com",
		Template: mailtpl.TaskReceived,
		Data:     mailtpl.NewTaskReceivedData(cfg, mailtpl.TaskInfo{ID: 1, Name: "Ann", Status: "pending"}),
	}

	subject, text, html, err := prepare(job)
	require.NoError(t, err)
	assert.Equal(t, "OneStepTask: we received your task #1", subject)
	assert.Contains(t, text, "Hi Ann")
	assert.Contains(t, html, "<html>")
	assert.Equal(t, "ann@example.com", job.Data["RecipientEmail"])
}

func TestPrepareRawJob(t *testing.T) {
	subject, text, _, err := prepare(&mailer.EmailJob{To: "a@b.co", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Notification", subject)
	assert.Equal(t, "hello", text)

	_, _, _, err = prepare(&mailer.EmailJob{To: "a@b.co", Template: "missing"})
	assert.Error(t, err)
}
