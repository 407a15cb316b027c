package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
)

var (
	// ErrNotFound is returned for any id or field lookup that matches nothing.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is matched by every *ConflictError.
	ErrConflict = errors.New("record already exists")
)

// ConflictError reports a uniqueness violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string { return e.Field + " already exists" }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// UserRepository defines persistence for customer accounts.
// Create assigns ID and CreatedAt on u and rejects a taken username or email.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}

// AdminUserRepository defines persistence for administrator accounts.
type AdminUserRepository interface {
	Create(ctx context.Context, a *entity.AdminUser) error
	GetByID(ctx context.Context, id int64) (*entity.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*entity.AdminUser, error)
}

// TaskFilter narrows a task listing. Zero-valued fields do not filter;
// a non-nil IDs restricts the result to those ids.
// Search is a case-insensitive substring match over name, email,
// description and task type, OR-ed across the fields.
type TaskFilter struct {
	Status      entity.TaskStatus
	Search      string
	OwnerUserID *int64
	IDs         []int64
}

// TaskRepository defines persistence for tasks. Update applies fn to a copy
// of the stored task, stamps UpdatedAt and persists it only when fn returns nil.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	List(ctx context.Context, f TaskFilter) ([]entity.Task, error)
	Update(ctx context.Context, id int64, fn func(*entity.Task) error) (*entity.Task, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TestimonialRepository defines persistence for testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, t *entity.Testimonial) error
	GetByID(ctx context.Context, id int64) (*entity.Testimonial, error)
	List(ctx context.Context, publishedOnly bool) ([]entity.Testimonial, error)
	Update(ctx context.Context, id int64, fn func(*entity.Testimonial) error) (*entity.Testimonial, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// PageContentRepository defines persistence for page documents.
// Create rejects a slug that already exists. Update stamps LastUpdated.
type PageContentRepository interface {
	Create(ctx context.Context, p *entity.PageContent) error
	GetByID(ctx context.Context, id int64) (*entity.PageContent, error)
	GetBySlug(ctx context.Context, slug string) (*entity.PageContent, error)
	List(ctx context.Context) ([]entity.PageContent, error)
	Update(ctx context.Context, id int64, fn func(*entity.PageContent) error) (*entity.PageContent, error)
}

// SessionStore keeps server-side sessions. Get returns ErrNotFound for
// unknown or expired sessions.
type SessionStore interface {
	Save(ctx context.Context, s entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}

// Store bundles the entity collections behind one swappable boundary.
type Store struct {
	Users        UserRepository
	Admins       AdminUserRepository
	Tasks        TaskRepository
	Testimonials TestimonialRepository
	PageContents PageContentRepository
}
