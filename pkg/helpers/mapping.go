package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/onesteptask/pkg/mailer"
	mailtpl "github.com/oksasatya/onesteptask/pkg/mailer/templates"
)

// SubjectFor returns a subject for jobs that carry neither a subject nor a
// renderable template.
func SubjectFor(job *mailer.EmailJob) string {
	typeStr := job.Template
	if typeStr == "" && job.Data != nil {
		typeStr = fmt.Sprintf("%v", job.Data["Type"])
	}
	switch strings.ToLower(typeStr) {
	case mailtpl.TaskReceived:
		return "We received your task"
	case mailtpl.TaskStatusChanged:
		return "Your task status changed"
	default:
		return "Notification"
	}
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
