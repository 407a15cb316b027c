package application

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	repo "github.com/oksasatya/onesteptask/internal/domain/repository"
)

// TaskIndex is an optional secondary index used for free-text search.
// The store stays authoritative; the index only yields ids.
type TaskIndex interface {
	Index(ctx context.Context, t entity.Task) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]int64, error)
}

// TaskNotifier is told about lifecycle events after they are persisted.
type TaskNotifier interface {
	TaskReceived(ctx context.Context, t entity.Task) error
	TaskStatusChanged(ctx context.Context, t entity.Task, previous entity.TaskStatus) error
}

type SubmitTaskInput struct {
	Name        string
	Email       string
	TaskType    string
	Deadline    string
	Description string
	Attachments *string
}

// TaskPatch carries the fields an administrator may change. Nil fields are
// left alone. An empty Attachments clears it; AssignedAdminID 0 unassigns.
type TaskPatch struct {
	Name            *string
	Email           *string
	TaskType        *string
	Deadline        *string
	Description     *string
	Attachments     *string
	Comments        *string
	AssignedAdminID *int64
}

// TaskQuery selects tasks for the admin listing. Search wins over Status
// when both are set.
type TaskQuery struct {
	Search string
	Status string
}

type TaskService struct {
	Tasks    repo.TaskRepository
	Admins   repo.AdminUserRepository
	Index    TaskIndex
	Notifier TaskNotifier
	Logger   *logrus.Logger

	// indexStale is set when a write to Index failed; search then scans the
	// store until RebuildIndex succeeds.
	indexStale atomic.Bool
}

func NewTaskService(tasks repo.TaskRepository, admins repo.AdminUserRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{Tasks: tasks, Admins: admins, Logger: logger}
}

// Submit records a new pending task. owner is set only for callers holding a
// UserSession.
func (s *TaskService) Submit(ctx context.Context, in SubmitTaskInput, owner *int64) (*entity.Task, error) {
	t := &entity.Task{
		OwnerUserID: owner,
		Name:        in.Name,
		Email:       in.Email,
		TaskType:    in.TaskType,
		Deadline:    in.Deadline,
		Description: in.Description,
		Attachments: nonEmpty(in.Attachments),
		Status:      entity.TaskStatusPending,
	}
	if err := s.Tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	tasksSubmitted.Add(1)
	s.log().WithField("task_id", t.ID).Info("task submitted")

	s.reindex(ctx, *t)
	if s.Notifier != nil {
		if err := s.Notifier.TaskReceived(ctx, *t); err != nil {
			s.log().WithError(err).WithField("task_id", t.ID).Warn("task received notification failed")
		}
	}
	return t, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*entity.Task, error) {
	t, err := s.Tasks.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return t, err
}

// SetStatus moves a task to any enumerated status. The value is checked
// before the store is touched.
func (s *TaskService) SetStatus(ctx context.Context, id int64, status string) (*entity.Task, error) {
	next := entity.TaskStatus(status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	var previous entity.TaskStatus
	t, err := s.Tasks.Update(ctx, id, func(t *entity.Task) error {
		previous = t.Status
		t.Status = next
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	taskStatusSets.Add(1)
	s.log().WithFields(logrus.Fields{"task_id": id, "from": previous, "to": next}).Info("task status updated")

	s.reindex(ctx, *t)
	if s.Notifier != nil && previous != next {
		if err := s.Notifier.TaskStatusChanged(ctx, *t, previous); err != nil {
			s.log().WithError(err).WithField("task_id", id).Warn("task status notification failed")
		}
	}
	return t, nil
}

// Patch merges p into the task. Status is never changed here.
func (s *TaskService) Patch(ctx context.Context, id int64, p TaskPatch) (*entity.Task, error) {
	if p.AssignedAdminID != nil && *p.AssignedAdminID != 0 {
		if _, err := s.Admins.GetByID(ctx, *p.AssignedAdminID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ValidationError("Assigned admin %d does not exist", *p.AssignedAdminID)
			}
			return nil, err
		}
	}

	t, err := s.Tasks.Update(ctx, id, func(t *entity.Task) error {
		setString(&t.Name, p.Name)
		setString(&t.Email, p.Email)
		setString(&t.TaskType, p.TaskType)
		setString(&t.Deadline, p.Deadline)
		setString(&t.Description, p.Description)
		setString(&t.Comments, p.Comments)
		if p.Attachments != nil {
			t.Attachments = nonEmpty(p.Attachments)
		}
		if p.AssignedAdminID != nil {
			if *p.AssignedAdminID == 0 {
				t.AssignedAdminID = nil
			} else {
				v := *p.AssignedAdminID
				t.AssignedAdminID = &v
			}
		}
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, *t)
	return t, nil
}

// List returns tasks in ascending id order.
func (s *TaskService) List(ctx context.Context, q TaskQuery) ([]entity.Task, error) {
	search := strings.TrimSpace(q.Search)
	if search != "" {
		if s.Index != nil && !s.indexStale.Load() {
			ids, err := s.Index.Search(ctx, search)
			if err == nil {
				if ids == nil {
					ids = []int64{}
				}
				// hits may name ids the store has reused since indexing
				return s.Tasks.List(ctx, repo.TaskFilter{IDs: ids, Search: search})
			}
			s.log().WithError(err).Warn("task index search failed, scanning store")
		}
		return s.Tasks.List(ctx, repo.TaskFilter{Search: search})
	}
	if q.Status != "" {
		st := entity.TaskStatus(q.Status)
		if !st.Valid() {
			return []entity.Task{}, nil
		}
		return s.Tasks.List(ctx, repo.TaskFilter{Status: st})
	}
	return s.Tasks.List(ctx, repo.TaskFilter{})
}

// ListForOwner returns the tasks submitted under userID's session.
func (s *TaskService) ListForOwner(ctx context.Context, userID int64) ([]entity.Task, error) {
	return s.Tasks.List(ctx, repo.TaskFilter{OwnerUserID: &userID})
}

// Remove deletes a task; false means the id did not exist.
func (s *TaskService) Remove(ctx context.Context, id int64) (bool, error) {
	ok, err := s.Tasks.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.indexStale.Store(true)
			s.log().WithError(err).WithField("task_id", id).Warn("task index remove failed")
		}
	}
	return true, nil
}

func (s *TaskService) reindex(ctx context.Context, t entity.Task) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, t); err != nil {
		s.indexStale.Store(true)
		s.log().WithError(err).WithField("task_id", t.ID).Warn("task index update failed")
	}
}

// RebuildIndex writes every stored task to Index. Until it succeeds after a
// failed index write, searches scan the store.
func (s *TaskService) RebuildIndex(ctx context.Context) error {
	if s.Index == nil {
		return nil
	}
	tasks, err := s.Tasks.List(ctx, repo.TaskFilter{})
	if err != nil {
		s.indexStale.Store(true)
		return err
	}
	for _, t := range tasks {
		if err := s.Index.Index(ctx, t); err != nil {
			s.indexStale.Store(true)
			return err
		}
	}
	s.indexStale.Store(false)
	s.log().WithField("tasks", len(tasks)).Info("task index rebuilt")
	return nil
}

func (s *TaskService) log() logrus.FieldLogger {
	if s.Logger == nil {
		return discardLogger
	}
	return s.Logger
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func nonEmpty(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	s := *v
	return &s
}
