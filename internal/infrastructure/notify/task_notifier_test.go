package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/onesteptask/config"
	"github.com/oksasatya/onesteptask/internal/domain/entity"
	"github.com/oksasatya/onesteptask/pkg/mailer"
	mailtpl "github.com/oksasatya/onesteptask/pkg/mailer/templates"
)

type capturePublisher struct {
	jobs []mailer.EmailJob
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body.(mailer.EmailJob))
	return nil
}

func TestEmailNotifier(t *testing.T) {
	pub := &capturePublisher{}
	n := NewEmailNotifier(pub, &config.Config{AppName: "onesteptask", CompanyName: "OneStepTask"})
	ctx := context.Background()

	task := entity.Task{
		ID:        5,
		Name:      "Ann",
		Email:     "ann@example.com",
		TaskType:  "design",
		Status:    entity.TaskStatusCompleted,
		CreatedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, n.TaskReceived(ctx, task))
	require.NoError(t, n.TaskStatusChanged(ctx, task, entity.TaskStatusPending))
	require.Len(t, pub.jobs, 2)

	assert.Equal(t, "ann@example.com", pub.jobs[0].To)
	assert.Equal(t, mailtpl.TaskReceived, pub.jobs[0].Template)
	assert.Equal(t, float64(5), pub.jobs[0].Data["TaskID"])

	assert.Equal(t, mailtpl.TaskStatusChanged, pub.jobs[1].Template)
	assert.Equal(t, "pending", pub.jobs[1].Data["PreviousStatus"])
	assert.Equal(t, "completed", pub.jobs[1].Data["Status"])

	// every job renders with the worker's templates
	for _, job := range pub.jobs {
		_, _, _, err := mailtpl.Render(job.Template, job.Data)
		assert.NoError(t, err)
	}

	// without an address there is nobody to tell
	task.Email = ""
	require.NoError(t, n.TaskReceived(ctx, task))
	assert.Len(t, pub.jobs, 2)
}
