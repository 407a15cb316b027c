package notify

import (
	"context"
	"time"

	"github.com/oksasatya/onesteptask/config"
	"github.com/oksasatya/onesteptask/internal/domain/entity"
	"github.com/oksasatya/onesteptask/pkg/mailer"
	mailtpl "github.com/oksasatya/onesteptask/pkg/mailer/templates"
)

// Publisher puts one JSON message on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier turns task lifecycle events into email jobs for the worker.
type EmailNotifier struct {
	Publisher Publisher
	Config    *config.Config
	Timeout   time.Duration
}

func NewEmailNotifier(p Publisher, cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{Publisher: p, Config: cfg, Timeout: 3 * time.Second}
}

func taskInfo(t entity.Task) mailtpl.TaskInfo {
	return mailtpl.TaskInfo{
		ID:          t.ID,
		Name:        t.Name,
		Email:       t.Email,
		TaskType:    t.TaskType,
		Deadline:    t.Deadline,
		Description: t.Description,
		Status:      string(t.Status),
	}
}

func (n *EmailNotifier) TaskReceived(ctx context.Context, t entity.Task) error {
	return n.publish(ctx, mailer.EmailJob{
		To:       t.Email,
		Template: mailtpl.TaskReceived,
		Data:     mailtpl.NewTaskReceivedData(n.Config, taskInfo(t), mailtpl.WithTime(t.CreatedAt)),
	})
}

func (n *EmailNotifier) TaskStatusChanged(ctx context.Context, t entity.Task, previous entity.TaskStatus) error {
	return n.publish(ctx, mailer.EmailJob{
		To:       t.Email,
		Template: mailtpl.TaskStatusChanged,
		Data:     mailtpl.NewTaskStatusChangedData(n.Config, taskInfo(t), string(previous), mailtpl.WithTime(t.UpdatedAt)),
	})
}

func (n *EmailNotifier) publish(ctx context.Context, job mailer.EmailJob) error {
	if job.To == "" {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, n.Timeout)
	defer cancel()
	return n.Publisher.PublishJSON(c, job)
}
