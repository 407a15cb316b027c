package entity

import "time"

// TaskStatus is the lifecycle state of a submitted task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskStatuses lists every status a task may hold.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

// Valid reports whether s is one of the enumerated statuses.
func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Known task types offered by the submission form. The server accepts any string.
const (
	TaskTypeResearch  = "research"
	TaskTypeWriting   = "writing"
	TaskTypeDataEntry = "data-entry"
	TaskTypeDesign    = "design"
	TaskTypeOther     = "other"
)

// Task is a unit of work submitted through the public funnel.
type Task struct {
	ID              int64      `json:"id"`
	OwnerUserID     *int64     `json:"ownerUserId,omitempty"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	TaskType        string     `json:"taskType"`
	Deadline        string     `json:"deadline"`
	Description     string     `json:"description"`
	Attachments     *string    `json:"attachments,omitempty"`
	Status          TaskStatus `json:"status"`
	AssignedAdminID *int64     `json:"assignedAdminId,omitempty"`
	Comments        string     `json:"comments"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	if t.OwnerUserID != nil {
		v := *t.OwnerUserID
		t.OwnerUserID = &v
	}
	if t.Attachments != nil {
		v := *t.Attachments
		t.Attachments = &v
	}
	if t.AssignedAdminID != nil {
		v := *t.AssignedAdminID
		t.AssignedAdminID = &v
	}
	return t
}
