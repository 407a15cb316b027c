package templates

import (
	"time"

	"github.com/oksasatya/onesteptask/config"
)

// TaskInfo is the part of a task an email talks about.
type TaskInfo struct {
	ID          int64
	Name        string
	Email       string
	TaskType    string
	Deadline    string
	Description string
	Status      string
}

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithPreviousStatus(s string) Option {
	return func(d *EmailData) { d.PreviousStatus = s }
}

// NewBaseEmailData fills the branding fields from cfg, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ string, t TaskInfo, opts ...Option) EmailData {
	d := EmailData{
		Name:           t.Name,
		Email:          t.Email,
		RecipientEmail: t.Email,
		Type:           typ,

		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		SupportURL:  cfg.SupportURL,

		TaskID:      t.ID,
		TaskType:    t.TaskType,
		Deadline:    t.Deadline,
		Description: t.Description,
		Status:      t.Status,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewTaskReceivedData(cfg *config.Config, t TaskInfo, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, TaskReceived, t, opts...))
}

func NewTaskStatusChangedData(cfg *config.Config, t TaskInfo, previous string, opts ...Option) map[string]any {
	opts = append([]Option{WithPreviousStatus(previous)}, opts...)
	return ToMap(NewBaseEmailData(cfg, TaskStatusChanged, t, opts...))
}
